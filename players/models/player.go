// Copyright (c) 2025 PitchScout
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Player is a scouted player profile. The engagement subsystem treats it as a
// comment anchor; profile maintenance lives in the scouting service.
type Player struct {
	ID          uuid.UUID `db:"id" json:"objectId"`
	FullName    string    `db:"full_name" json:"fullName"`
	Position    string    `db:"position" json:"position"`
	Club        string    `db:"club" json:"club"`
	Nationality string    `db:"nationality" json:"nationality"`
	BirthYear   int       `db:"birth_year" json:"birthYear"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
