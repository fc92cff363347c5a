package models

import "time"

const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

type User struct {
	ID           uint64
	Phone        string
	PasswordHash string
	Name         string
	Surname      string
	Role         string
	ClientCode   *string
	IsBlocked    bool
	CreatedAt    time.Time
}

// Actor — проверенная личность вызывающего. Заполняется внешним
// auth-прокси (заголовки X-User-Id / X-User-Role), здесь не перепроверяется.
type Actor struct {
	UserID uint64
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Parcel — подписка клиента на трек. Не более одной на пару (user, track).
type Parcel struct {
	ID         uint64
	UserID     uint64
	TrackID    uint64
	IsArchived bool
	CreatedAt  time.Time
}

type ParcelView struct {
	Parcel Parcel
	Track  Track
	Status Status
}

type Settings struct {
	ExchangeRate     float64
	PricePerKg       float64
	ChinaAddress     string
	WarehouseAddress string
	WhatsappNumber   string
	AboutText        string
	ProhibitedItems  string
	InstructionText  string
}

type StatusCount struct {
	StatusID uint64
	Name     string
	Count    int64
}

type Stats struct {
	TotalUsers     int64
	TotalTracks    int64
	TracksByStatus []StatusCount
}
