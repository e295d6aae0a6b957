package models

import (
	"database/sql"
	"time"
)

// Роли пользователей (закрытый список)
const (
	RoleAdmin      = "ADMIN"
	RoleUser       = "USER"
	RoleMuseum     = "MUSEUM"
	RoleCreator    = "CREATOR"
	RoleEditor     = "EDITOR"
	RoleAuthor     = "AUTHOR"
	RoleExhibition = "EXHIBITION"
)

// Статусы модерации контента
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type User struct {
	UserID                 string          `json:"userId" db:"user_id"`
	Email                  string          `json:"email" db:"email"`
	PasswordHash           string          `json:"-" db:"password_hash"`
	Role                   string          `json:"role" db:"role"`
	Title                  string          `json:"title" db:"title"`
	Bio                    string          `json:"bio" db:"bio"`
	ImageURL               string          `json:"imageUrl" db:"image_url"`
	Country                string          `json:"country" db:"country"`
	City                   string          `json:"city" db:"city"`
	Street                 string          `json:"street" db:"street"`
	HouseNumber            string          `json:"houseNumber" db:"house_number"`
	Postcode               string          `json:"postcode" db:"postcode"`
	Latitude               sql.NullFloat64 `json:"latitude" db:"latitude"`
	Longitude              sql.NullFloat64 `json:"longitude" db:"longitude"`
	ResetToken             sql.NullString  `json:"-" db:"reset_token"`
	ResetTokenExpiryTime   sql.NullTime    `json:"-" db:"reset_token_expiry_time"`
	RefreshToken           string          `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time       `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time       `json:"updatedAt" db:"updated_at"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	TitleEn   string    `json:"title_en" db:"title_en"`
	TitleUk   string    `json:"title_uk" db:"title_uk"`
	ContentEn string    `json:"content_en" db:"content_en"`
	ContentUk string    `json:"content_uk" db:"content_uk"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Images    []Image   `json:"images" db:"-"`
}

type Product struct {
	ProductID      string    `json:"productId" db:"product_id"`
	AuthorID       string    `json:"authorId" db:"author_id"`
	TitleEn        string    `json:"title_en" db:"title_en"`
	TitleUk        string    `json:"title_uk" db:"title_uk"`
	DescriptionEn  string    `json:"description_en" db:"description_en"`
	DescriptionUk  string    `json:"description_uk" db:"description_uk"`
	SpecsEn        string    `json:"specs_en" db:"specs_en"`
	SpecsUk        string    `json:"specs_uk" db:"specs_uk"`
	StyleEn        string    `json:"style_en" db:"style_en"`
	StyleUk        string    `json:"style_uk" db:"style_uk"`
	TechniqueEn    string    `json:"technique_en" db:"technique_en"`
	TechniqueUk    string    `json:"technique_uk" db:"technique_uk"`
	Size           string    `json:"size" db:"size"`
	DateOfCreation string    `json:"dateOfCreation" db:"date_of_creation"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
	Images         []Image   `json:"images" db:"-"`
}

type Exhibition struct {
	ExhibitionID  string          `json:"exhibitionId" db:"exhibition_id"`
	CreatedByID   string          `json:"createdById" db:"created_by_id"`
	TitleEn       string          `json:"title_en" db:"title_en"`
	TitleUk       string          `json:"title_uk" db:"title_uk"`
	DescriptionEn string          `json:"description_en" db:"description_en"`
	DescriptionUk string          `json:"description_uk" db:"description_uk"`
	LocationEn    string          `json:"location_en" db:"location_en"`
	LocationUk    string          `json:"location_uk" db:"location_uk"`
	StartDate     time.Time       `json:"startDate" db:"start_date"`
	EndDate       time.Time       `json:"endDate" db:"end_date"`
	Time          string          `json:"time" db:"time"`
	EndTime       string          `json:"endTime" db:"end_time"`
	Address       string          `json:"address" db:"address"`
	Latitude      sql.NullFloat64 `json:"latitude" db:"latitude"`
	Longitude     sql.NullFloat64 `json:"longitude" db:"longitude"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
	Images        []Image         `json:"images" db:"-"`
	ArtistIDs     []string        `json:"artistIds" db:"-"`
	ProductIDs    []string        `json:"productIds" db:"-"`
}

// Like - ровно одно из четырех целевых полей заполнено
type Like struct {
	LikeID       string         `json:"likeId" db:"like_id"`
	UserID       string         `json:"userId" db:"user_id"`
	PostID       sql.NullString `json:"postId" db:"post_id"`
	ProductID    sql.NullString `json:"productId" db:"product_id"`
	ExhibitionID sql.NullString `json:"exhibitionId" db:"exhibition_id"`
	LikedUserID  sql.NullString `json:"likedUserId" db:"liked_user_id"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
}

type ArtTerm struct {
	TermID        string    `json:"termId" db:"term_id"`
	TitleEn       string    `json:"title_en" db:"title_en"`
	TitleUk       string    `json:"title_uk" db:"title_uk"`
	DescriptionEn string    `json:"description_en" db:"description_en"`
	DescriptionUk string    `json:"description_uk" db:"description_uk"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

type Image struct {
	ImageID   string    `json:"imageId" db:"image_id"`
	EntityID  string    `json:"entityId" db:"entity_id"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
