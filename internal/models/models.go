package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"unique;not null"          json:"email"`
	Password  string    `gorm:"not null"                 json:"-"`
	Fullname  string    `gorm:"not null"                 json:"fullname"`
	Gender    string    `json:"gender"`
	Address   string    `json:"address"`
	Role      string    `gorm:"not null;default:user"    json:"role"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	User      User      `gorm:"foreignKey:UserID"        json:"user"`
	Name      string    `gorm:"not null"                 json:"name"`
	BuyPrice  int64     `gorm:"not null"                 json:"buy_price"`
	SellPrice int64     `gorm:"not null"                 json:"sell_price"`
	Stock     int64     `gorm:"not null"                 json:"stock"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
