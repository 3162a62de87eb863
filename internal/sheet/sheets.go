package sheet

import (
	"context"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/oakwood-commons/menusheet/pkg/logger"
)

// sheetsScopes are requested for the service account. Drive file access is
// needed only to share the new document.
var sheetsScopes = []string{sheets.SpreadsheetsScope, drive.DriveFileScope}

// SheetsSink creates a Google Sheets spreadsheet with a service account.
type SheetsSink struct {
	// Credentials is the path of the service-account JSON key.
	Credentials string
	// ShareWith lists email addresses granted writer access to each new document.
	ShareWith []string

	clientOptions func(ctx context.Context) ([]option.ClientOption, error)
}

// NewSheetsSink returns a sink that authenticates with the key at credentials.
func NewSheetsSink(credentials string, shareWith []string) *SheetsSink {
	s := &SheetsSink{Credentials: credentials, ShareWith: shareWith}
	s.clientOptions = s.credentialOptions
	return s
}

// CredentialsPath implements CredentialedSink.
func (s *SheetsSink) CredentialsPath() string {
	return s.Credentials
}

func (s *SheetsSink) credentialOptions(ctx context.Context) ([]option.ClientOption, error) {
	data, err := os.ReadFile(s.Credentials)
	if err != nil {
		return nil, err
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheetsScopes...)
	if err != nil {
		return nil, err
	}
	return []option.ClientOption{option.WithCredentials(creds)}, nil
}

// CreateAndWrite creates a spreadsheet named title, writes rows starting at
// A1 of its first sheet and returns the spreadsheet URL.
func (s *SheetsSink) CreateAndWrite(ctx context.Context, title string, rows [][]string) (string, error) {
	lgr := logger.FromContext(ctx)

	optsFn := s.clientOptions
	if optsFn == nil {
		optsFn = s.credentialOptions
	}
	opts, err := optsFn(ctx)
	if err != nil {
		return "", writeFailed("credentials", err)
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return "", writeFailed("sheets client", err)
	}

	created, err := svc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", writeFailed("create spreadsheet", err)
	}
	lgr.V(1).Info("spreadsheet created", "id", created.SpreadsheetId, "title", title)

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		values[i] = cells
	}
	_, err = svc.Spreadsheets.Values.Update(created.SpreadsheetId, "A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return "", writeFailed("write values", err)
	}

	if err := s.share(ctx, opts, created.SpreadsheetId); err != nil {
		return "", err
	}
	return created.SpreadsheetUrl, nil
}

func (s *SheetsSink) share(ctx context.Context, opts []option.ClientOption, fileID string) error {
	var recipients []string
	for _, email := range s.ShareWith {
		if email = strings.TrimSpace(email); email != "" {
			recipients = append(recipients, email)
		}
	}
	if len(recipients) == 0 {
		return nil
	}

	dsvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return writeFailed("drive client", err)
	}
	for _, email := range recipients {
		_, err := dsvc.Permissions.Create(fileID, &drive.Permission{
			Type:         "user",
			Role:         "writer",
			EmailAddress: email,
		}).SendNotificationEmail(false).Context(ctx).Do()
		if err != nil {
			return writeFailed("share with "+email, err)
		}
	}
	return nil
}
