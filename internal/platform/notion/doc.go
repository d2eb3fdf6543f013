// Package notion stores users and generated articles in Notion databases.
//
// UserDirectory checks login credentials against the user database.
// ArticleStore writes generated articles as database pages, with the full
// body rendered as blocks, and reads a user's history back.
package notion
