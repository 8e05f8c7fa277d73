package domain

import "github.com/google/uuid"

// CollectionUsers holds resolved identities.
const CollectionUsers = "users"

// UserInformation links an external subject to a local user id.
type UserInformation struct {
	ID  uuid.UUID `json:"id"`
	Sub string    `json:"sub"`
}

func (UserInformation) Collection() string { return CollectionUsers }

func (u UserInformation) DocumentID() string { return u.ID.String() }
