package models

import "time"

// Status — этап пайплайна доставки. Ord задаёт бизнес-порядок;
// статус с минимальным Ord считается начальным ("по умолчанию").
type Status struct {
	ID          uint64
	Name        string
	ChineseName *string
	Ord         int32
	Color       string
	IsFinal     bool
}

type Batch struct {
	ID          uint64
	BatchNumber string
	CreatedAt   time.Time
}

type Track struct {
	ID          uint64
	TrackNumber string
	StatusID    uint64
	BatchID     *uint64
	Weight      *float64
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TrackHistory — append-only журнал смен статуса.
// EventDate может быть "задним числом" из импортируемого файла.
type TrackHistory struct {
	ID        uint64
	TrackID   uint64
	StatusID  uint64
	EventDate time.Time
	Note      *string
	CreatedAt time.Time
}

type TrackCreateInput struct {
	TrackNumber string
	StatusID    uint64
	BatchID     *uint64
	Weight      *float64
	Description *string
}

type StatusInput struct {
	Name        string
	ChineseName *string
	Ord         int32
	Color       string
	IsFinal     bool
}
