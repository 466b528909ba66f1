package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/simplon-hub/code-hub/internal/domain"
	apperrors "github.com/simplon-hub/code-hub/pkg/util"
)

// ExportService builds the admin xlsx export: one sheet of accounts, one
// of download records.
type ExportService struct {
	admin     *AdminService
	downloads *DownloadService
}

// NewExportService builds the service.
func NewExportService(admin *AdminService, downloads *DownloadService) *ExportService {
	return &ExportService{admin: admin, downloads: downloads}
}

const exportTimeLayout = "2006-01-02 15:04"

// Build produces the workbook bytes.
func (s *ExportService) Build(ctx context.Context) ([]byte, error) {
	users, err := s.admin.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.downloads.AllDownloads(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeUsersSheet(f, users); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := writeDownloadsSheet(f, entries); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	// the default sheet is replaced by the two real ones
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		_ = f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func writeUsersSheet(f *excelize.File, users []domain.User) error {
	const sheet = "users"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []any{"Matricule", "Pseudo", "Email", "Rôle", "Actif", "Inscription"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, u := range users {
		row := []any{
			u.Matricule,
			u.Pseudo,
			u.Email,
			string(domain.ResolveRole(string(u.Role), u.Matricule)),
			u.Actif,
			u.DateInscription.Format(exportTimeLayout),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeDownloadsSheet(f *excelize.File, entries []domain.DownloadEntry) error {
	const sheet = "downloads"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []any{"Projet", "Taille", "Technologies", "Utilisateur", "Date"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, e := range entries {
		row := []any{
			e.Titre,
			e.Taille,
			strings.Join(e.Technologies, ", "),
			e.UserID,
			e.DateTelechargement.Format(exportTimeLayout),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// Filename names the attachment with the export date.
func (s *ExportService) Filename(now time.Time) string {
	return "code-hub-export-" + now.Format("2006-01-02") + ".xlsx"
}
