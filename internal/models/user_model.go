package models

import "time"

// User represents a registered user in the system.
// The Firebase Auth UID doubles as the Firestore document ID.
type User struct {
	UID       string    `json:"uid" firestore:"-"` // Firebase Auth UID, will be the document ID
	Name      string    `json:"name,omitempty" firestore:"name,omitempty"`
	Email     string    `json:"email" firestore:"email"`
	Role      string    `json:"role" firestore:"role"` // e.g., "user", "admin"; defaults to "user"
	Photo     string    `json:"photo,omitempty" firestore:"photo,omitempty"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Address   string    `json:"address,omitempty" firestore:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// DefaultRole is assigned to users created through registration.
const DefaultRole = "user"

// Caller is the identity derived from a verified Firebase ID token.
// The auth middleware attaches it to the request context; handlers and
// services treat it as the authenticated actor for ownership checks.
type Caller struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
