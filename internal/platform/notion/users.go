package notion

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
	"golang.org/x/crypto/bcrypt"
)

// User database property names.
const (
	propUserID   = "아이디"
	propPassword = "비밀번호"
)

// UserDirectory checks login credentials against the Notion user database.
// Each row holds the login id as its title and the password, either a bcrypt
// hash or plain text, in a rich text column.
type UserDirectory struct {
	databases  DatabaseQuerier
	databaseID notionapi.DatabaseID
}

// NewUserDirectory creates a UserDirectory over databaseID.
func NewUserDirectory(databases DatabaseQuerier, databaseID string) *UserDirectory {
	return &UserDirectory{databases: databases, databaseID: notionapi.DatabaseID(databaseID)}
}

// CheckCredentials reports whether id and secret match a row of the user
// database. It never modifies the database.
func (d *UserDirectory) CheckCredentials(ctx context.Context, id, secret string) (bool, error) {
	if d.databaseID == "" {
		return false, ErrNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" || secret == "" {
		return false, nil
	}

	req := &notionapi.DatabaseQueryRequest{
		Filter: &notionapi.PropertyFilter{
			Property: propUserID,
			RichText: &notionapi.TextFilterCondition{Equals: id},
		},
		PageSize: 10,
	}
	resp, err := d.databases.Query(ctx, d.databaseID, req)
	if err != nil {
		return false, fmt.Errorf("failed to query user database: %w", err)
	}

	for _, page := range resp.Results {
		if titleValue(page.Properties[propUserID]) != id {
			continue
		}
		stored := richTextValue(page.Properties[propPassword])
		if stored == "" {
			continue
		}
		ok, err := passwordMatches(stored, secret)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func passwordMatches(stored, secret string) (bool, error) {
	if strings.HasPrefix(stored, "$2") {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password hash: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) == 1, nil
}
