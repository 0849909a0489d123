package catalog

import (
	"strings"

	"github.com/digkill/cinexa/internal/models"
)

type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Language string `json:"language"`
	Provider string `json:"provider"`
}

// Options groups the secondary choices offered on the generation forms.
type Options struct {
	Voices       []Voice         `json:"voices"`
	VideoStyles  []string        `json:"videoStyles"`
	MusicStyles  []string        `json:"musicStyles"`
	Languages    []string        `json:"languages"`
	AspectRatios []models.Option `json:"aspectRatios"`
}

const multiLingual = "Multi-lingual"

var voices = []Voice{
	{ID: "eleven_turbo_adam", Name: "Adam", Category: "Conversational", Language: multiLingual, Provider: "ElevenLabs"},
	{ID: "eleven_turbo_rachel", Name: "Rachel", Category: "Narrative", Language: multiLingual, Provider: "ElevenLabs"},
	{ID: "eleven_turbo_drew", Name: "Drew", Category: "News Anchor", Language: multiLingual, Provider: "ElevenLabs"},
	{ID: "eleven_turbo_clyde", Name: "Clyde", Category: "Deep", Language: multiLingual, Provider: "ElevenLabs"},
	{ID: "openai_alloy", Name: "Alloy", Category: "Neutral", Language: multiLingual, Provider: "OpenAI"},
	{ID: "openai_echo", Name: "Echo", Category: "Warm", Language: multiLingual, Provider: "OpenAI"},
	{ID: "openai_fable", Name: "Fable", Category: "British", Language: multiLingual, Provider: "OpenAI"},
	{ID: "openai_onyx", Name: "Onyx", Category: "Deep", Language: multiLingual, Provider: "OpenAI"},
	{ID: "openai_nova", Name: "Nova", Category: "Energetic", Language: multiLingual, Provider: "OpenAI"},
	{ID: "google_journey_f", Name: "Journey (F)", Category: "Storytelling", Language: multiLingual, Provider: "Google Cloud"},
	{ID: "google_journey_m", Name: "Journey (M)", Category: "Storytelling", Language: multiLingual, Provider: "Google Cloud"},
	{ID: "azure_ava", Name: "Ava", Category: "Professional", Language: multiLingual, Provider: "Azure AI"},
	{ID: "azure_brian", Name: "Brian", Category: "Documentary", Language: multiLingual, Provider: "Azure AI"},
	{ID: "playht_william", Name: "William", Category: "Advertising", Language: multiLingual, Provider: "Play.ht"},
	{ID: "pt_native_1", Name: "António", Category: "Narrative", Language: "Português", Provider: "Azure AI"},
	{ID: "pt_br_native_1", Name: "Brenda", Category: "Commercial", Language: "Português (BR)", Provider: "Google Cloud"},
	{ID: "es_native_1", Name: "Sergio", Category: "Warm", Language: "Spanish", Provider: "OpenAI"},
	{ID: "fr_native_1", Name: "Benoit", Category: "Formal", Language: "French", Provider: "Google Cloud"},
	{ID: "de_native_1", Name: "Gunther", Category: "Authoritative", Language: "German", Provider: "Azure AI"},
	{ID: "jp_native_1", Name: "Kyoko", Category: "Anime", Language: "Japanese", Provider: "Play.ht"},
}

var videoStyles = []string{
	"Cinematic", "Anime", "Photorealistic", "3D Render", "Minimalist", "Cyberpunk",
	"Watercolor", "Noir", "Vaporwave", "Documentary", "Fantasy",
}

var musicStyles = []string{
	"Cinematic / Epic", "Lo-Fi / Chill", "Cyberpunk / Synthwave", "Corporate / Upbeat",
	"Horror / Suspense", "Nature / Ambient", "Jazz / Lounge", "Rock / High Energy", "None / Silence",
}

var languages = []string{
	"Português (PT)", "Português (BR)", "English (US)", "English (UK)", "Spanish", "French",
	"German", "Italian", "Japanese", "Mandarin", "Hindi", "Arabic",
}

var aspectRatios = []models.Option{
	{ID: "16:9", Name: "Youtube / TV"},
	{ID: "9:16", Name: "TikTok / Reels"},
	{ID: "1:1", Name: "Square / Feed"},
	{ID: "4:3", Name: "Classic"},
	{ID: "3:4", Name: "Portrait"},
}

func AllOptions() Options {
	return Options{
		Voices:       append([]Voice(nil), voices...),
		VideoStyles:  append([]string(nil), videoStyles...),
		MusicStyles:  append([]string(nil), musicStyles...),
		Languages:    append([]string(nil), languages...),
		AspectRatios: append([]models.Option(nil), aspectRatios...),
	}
}

// ValidAspectRatio reports whether ratio is offered. An empty ratio is
// accepted and replaced by the kind's default downstream.
func ValidAspectRatio(ratio string) bool {
	if ratio == "" {
		return true
	}
	for _, r := range aspectRatios {
		if r.ID == ratio {
			return true
		}
	}
	return false
}

// VoicesFor returns the voices usable for language: multi-lingual voices plus
// native voices whose language starts with the same word.
func VoicesFor(language string) []Voice {
	root := ""
	if fields := strings.Fields(language); len(fields) > 0 {
		root = fields[0]
	}
	var out []Voice
	for _, v := range voices {
		if v.Language == multiLingual {
			out = append(out, v)
			continue
		}
		if fields := strings.Fields(v.Language); root != "" && len(fields) > 0 && fields[0] == root {
			out = append(out, v)
		}
	}
	return out
}
