package slapservice

import (
	"context"
	"fmt"
	"strconv"
	"time"

	slapdomain "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Slaps"

var exportHeader = []any{"ID", "Offender", "Enforcer", "Sentence", "Reason", "Created At"}

// ExportGuildSlaps renders the first limit guild entries as an xlsx
// workbook. IDs are written as text so spreadsheet apps keep every digit.
func (s *SlapService) ExportGuildSlaps(ctx context.Context, guildID sharedtypes.GuildID, limit uint64) ([]byte, error) {
	slaps, err := s.GuildRecord(guildID).Slaps(ctx, limit)
	if err != nil {
		return nil, err
	}
	return writeWorkbook(slaps)
}

func writeWorkbook(slaps []slapdomain.SlapReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, slap := range slaps {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		enforcer := ""
		if slap.Enforcer != nil {
			enforcer = slap.Enforcer.String()
		}
		reason := ""
		if slap.Reason != nil {
			reason = *slap.Reason
		}
		row := []any{
			strconv.FormatUint(slap.ID, 10),
			slap.Offender.String(),
			enforcer,
			strconv.FormatUint(slap.Sentence, 10),
			reason,
			slap.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(exportSheet, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
