package model

import "strconv"

// OwnerID is the id of the authenticated user a query is scoped to.
// It is only ever derived from a verified access token.
type OwnerID int64

func (o OwnerID) String() string {
	return strconv.FormatInt(int64(o), 10)
}
