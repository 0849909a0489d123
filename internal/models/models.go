package models

import "time"

type PlanType string

const (
	PlanFree    PlanType = "FREE"
	PlanPlus    PlanType = "PLUS"
	PlanPremium PlanType = "PREMIUM"
)

type GenerationKind string

const (
	KindVideo     GenerationKind = "VIDEO"
	KindImage     GenerationKind = "IMAGE"
	KindThumbnail GenerationKind = "THUMBNAIL"
)

type GenerationStatus string

const (
	StatusPending    GenerationStatus = "PENDING"
	StatusProcessing GenerationStatus = "PROCESSING"
	StatusCompleted  GenerationStatus = "COMPLETED"
	StatusFailed     GenerationStatus = "FAILED"
)

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"name"`
	Plan         PlanType  `json:"plan"`
	Credits      int       `json:"credits"`
	IsAdmin      bool      `json:"isAdmin"`
	AvatarURL    string    `json:"avatarUrl"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Plan struct {
	ID              PlanType `json:"id"`
	Name            string   `json:"name"`
	Price           int      `json:"price"`
	Credits         int      `json:"credits"`
	MaxVideoMinutes int      `json:"maxVideoDuration"`
	Watermark       bool     `json:"watermark"`
	Features        []string `json:"features"`
}

type SEOMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type AudioConfig struct {
	MusicStyle   string `json:"musicStyle"`
	SoundEffects bool   `json:"soundEffects"`
}

type TextOverlay struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	ColorTheme string `json:"colorTheme,omitempty"`
}

// GenerationSettings holds the kind-specific parameters of a request. Only
// the fields relevant to the record's kind are populated.
type GenerationSettings struct {
	ModelID         string       `json:"modelId"`
	Style           string       `json:"style,omitempty"`
	AspectRatio     string       `json:"aspectRatio,omitempty"`
	DurationMinutes int          `json:"duration,omitempty"`
	VoiceID         string       `json:"voiceId,omitempty"`
	Language        string       `json:"language,omitempty"`
	Captions        bool         `json:"captions,omitempty"`
	SEOEnabled      bool         `json:"seoEnabled,omitempty"`
	Audio           *AudioConfig `json:"audioConfig,omitempty"`
	TextOverlay     *TextOverlay `json:"textOverlay,omitempty"`
}

type GenerationRecord struct {
	ID           string             `json:"id"`
	OwnerID      string             `json:"userId"`
	Kind         GenerationKind     `json:"type"`
	Prompt       string             `json:"prompt"`
	Status       GenerationStatus   `json:"status"`
	MediaURL     string             `json:"url,omitempty"`
	ThumbnailURL string             `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	Settings     GenerationSettings `json:"settings"`
	SEO          *SEOMetadata       `json:"seo,omitempty"`
}

type PaymentMethod struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Detail        string `json:"detail"`
	Icon          string `json:"icon"`
	IsActive      bool   `json:"isActive"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Beneficiary   string `json:"beneficiary,omitempty"`
}

type ProviderModel struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Provider    string         `json:"provider"`
	Description string         `json:"description"`
	Kind        GenerationKind `json:"kind"`
	IsPremium   bool           `json:"isPremium"`
}

// FeaturedAsset is a curated showcase entry with the prompt that produced it.
type FeaturedAsset struct {
	ID     string         `json:"id"`
	Kind   GenerationKind `json:"type"`
	Title  string         `json:"title"`
	URL    string         `json:"url"`
	Model  string         `json:"model"`
	Author string         `json:"author"`
	Prompt string         `json:"prompt"`
}

type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
