package catalog

import "github.com/digkill/cinexa/internal/models"

var videoModels = []models.ProviderModel{
	{ID: "veo_3", Name: "Veo", Version: "3.1", Provider: "Google DeepMind", Kind: models.KindVideo,
		Description: "Balanced and fast. Good for long videos."},
	{ID: "sora_1", Name: "Sora", Version: "1.0 Turbo", Provider: "OpenAI", Kind: models.KindVideo, IsPremium: true,
		Description: "Extreme cinematic realism and complex physics."},
	{ID: "gen_3", Name: "Gen-3 Alpha", Version: "Alpha", Provider: "Runway", Kind: models.KindVideo, IsPremium: true,
		Description: "Precise creative control and artistic styles."},
	{ID: "kling_ai", Name: "Kling", Version: "1.5", Provider: "Kuaishou", Kind: models.KindVideo, IsPremium: true,
		Description: "High resolution and fluid character motion."},
	{ID: "luma_dream", Name: "Dream Machine", Version: "1.0", Provider: "Luma AI", Kind: models.KindVideo,
		Description: "Strong at transformations and morphing."},
}

var imageModels = []models.ProviderModel{
	{ID: "imagen_3", Name: "Imagen", Version: "3.0", Provider: "Google DeepMind", Kind: models.KindImage,
		Description: "Photorealism and accurate typography."},
	{ID: "midjourney_v6", Name: "Midjourney", Version: "v6.1", Provider: "Midjourney", Kind: models.KindImage, IsPremium: true,
		Description: "Distinctive artistic style and creativity."},
	{ID: "dalle_3", Name: "DALL-E", Version: "3.0", Provider: "OpenAI", Kind: models.KindImage,
		Description: "Prompt fidelity and complex composition."},
	{ID: "flux_pro", Name: "Flux", Version: "1.1 Pro", Provider: "Black Forest", Kind: models.KindImage, IsPremium: true,
		Description: "Fine detail and anatomy."},
	{ID: "stable_3", Name: "Stable Diffusion", Version: "3.5 Large", Provider: "Stability AI", Kind: models.KindImage,
		Description: "Versatile with style control."},
}

var thumbnailModels = []models.ProviderModel{
	{ID: "ideogram_2", Name: "Ideogram", Version: "v2 Turbo", Provider: "Ideogram", Kind: models.KindThumbnail,
		Description: "Best-in-class text rendering."},
	{ID: "midjourney_v6", Name: "Midjourney", Version: "v6.1", Provider: "Midjourney", Kind: models.KindThumbnail, IsPremium: true,
		Description: "Vibrant clickbait look with strong composition."},
	{ID: "flux_1_pro", Name: "Flux", Version: "1.1 Pro", Provider: "Black Forest", Kind: models.KindThumbnail, IsPremium: true,
		Description: "Extreme realism that follows the prompt closely."},
	{ID: "dalle_3", Name: "DALL-E", Version: "3.0", Provider: "OpenAI", Kind: models.KindThumbnail,
		Description: "Follows complex layout instructions."},
	{ID: "imagen_3", Name: "Imagen", Version: "3.0", Provider: "Google DeepMind", Kind: models.KindThumbnail,
		Description: "Fast and efficient for simple thumbnails."},
}

// Models lists the provider models available for kind, or nil for an
// unknown kind.
func Models(kind models.GenerationKind) []models.ProviderModel {
	var src []models.ProviderModel
	switch kind {
	case models.KindVideo:
		src = videoModels
	case models.KindImage:
		src = imageModels
	case models.KindThumbnail:
		src = thumbnailModels
	default:
		return nil
	}
	return append([]models.ProviderModel(nil), src...)
}

// Model looks up a model by id within kind.
func Model(kind models.GenerationKind, id string) (models.ProviderModel, bool) {
	for _, m := range Models(kind) {
		if m.ID == id {
			return m, true
		}
	}
	return models.ProviderModel{}, false
}

// DefaultModel is the first entry of the kind's list.
func DefaultModel(kind models.GenerationKind) (models.ProviderModel, bool) {
	list := Models(kind)
	if len(list) == 0 {
		return models.ProviderModel{}, false
	}
	return list[0], true
}
