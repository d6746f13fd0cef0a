//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strconv"

// User is an identity record listed by the user directory.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RowTestID returns the data-testid used for this user's list item.
func (u User) RowTestID() string {
	return "user-row-" + strconv.Itoa(u.ID)
}
