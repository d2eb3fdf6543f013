package notion

import (
	"context"
	"errors"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func userPage(id, password string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID("user-" + id),
		Properties: notionapi.Properties{
			propUserID:   &notionapi.TitleProperty{Title: richText(id)},
			propPassword: &notionapi.RichTextProperty{RichText: richText(password)},
		},
	}
}

func TestCheckCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pw"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name   string
		pages  []notionapi.Page
		id     string
		secret string
		want   bool
	}{
		{
			name:   "plain password matches",
			pages:  []notionapi.Page{userPage("kim", "plain-pw")},
			id:     "kim",
			secret: "plain-pw",
			want:   true,
		},
		{
			name:   "bcrypt password matches",
			pages:  []notionapi.Page{userPage("lee", string(hash))},
			id:     "lee",
			secret: "hashed-pw",
			want:   true,
		},
		{
			name:   "bcrypt password mismatch",
			pages:  []notionapi.Page{userPage("lee", string(hash))},
			id:     "lee",
			secret: "wrong",
			want:   false,
		},
		{
			name:   "wrong password",
			pages:  []notionapi.Page{userPage("kim", "plain-pw")},
			id:     "kim",
			secret: "nope",
			want:   false,
		},
		{
			name:   "id must match exactly",
			pages:  []notionapi.Page{userPage("kim2", "plain-pw")},
			id:     "kim",
			secret: "plain-pw",
			want:   false,
		},
		{
			name:   "no rows",
			id:     "park",
			secret: "pw",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDatabase{responses: []*notionapi.DatabaseQueryResponse{{Results: tt.pages}}}
			dir := NewUserDirectory(db, "user-db")

			ok, err := dir.CheckCredentials(context.Background(), tt.id, tt.secret)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			require.Len(t, db.requests, 1)
			filter, isProp := db.requests[0].Filter.(*notionapi.PropertyFilter)
			require.True(t, isProp)
			assert.Equal(t, propUserID, filter.Property)
			assert.Equal(t, tt.id, filter.RichText.Equals)
		})
	}
}

func TestCheckCredentialsBlankInput(t *testing.T) {
	db := &fakeDatabase{}
	dir := NewUserDirectory(db, "user-db")

	ok, err := dir.CheckCredentials(context.Background(), "  ", "pw")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, db.requests, "blank ids never reach the database")
}

func TestCheckCredentialsQueryError(t *testing.T) {
	db := &fakeDatabase{err: errors.New("notion down")}
	dir := NewUserDirectory(db, "user-db")

	ok, err := dir.CheckCredentials(context.Background(), "kim", "pw")

	require.Error(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, db.err)
}

func TestCheckCredentialsNotConfigured(t *testing.T) {
	dir := NewUserDirectory(&fakeDatabase{}, "")

	_, err := dir.CheckCredentials(context.Background(), "kim", "pw")

	assert.ErrorIs(t, err, ErrNotConfigured)
}
