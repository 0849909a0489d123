package catalog

import "github.com/digkill/cinexa/internal/models"

var featured = []models.FeaturedAsset{
	{ID: "1", Kind: models.KindVideo, Title: "Neon Tokyo Drift", Model: "OpenAI Sora", Author: "AI_Master",
		URL:    "https://images.unsplash.com/photo-1542259681-d4cd7093db29?q=80&w=1000&auto=format&fit=crop",
		Prompt: "Cinematic drone shot following a futuristic car drifting through neon-lit Tokyo streets in 2050, cyberpunk aesthetic, rain reflections, 8k resolution."},
	{ID: "2", Kind: models.KindImage, Title: "Ethereal Portrait", Model: "Midjourney v6", Author: "CreativeSoul",
		URL:    "https://images.unsplash.com/photo-1534528741775-53994a69daeb?q=80&w=1000&auto=format&fit=crop",
		Prompt: "Ultra-realistic portrait of a woman with bioluminescent flowers growing from her hair, soft studio lighting, bokeh background, fantasy style."},
	{ID: "3", Kind: models.KindVideo, Title: "Underwater Civilization", Model: "Runway Gen-3", Author: "DeepDive",
		URL:    "https://images.unsplash.com/photo-1682687220742-aba13b6e50ba?q=80&w=1000&auto=format&fit=crop",
		Prompt: "Wide shot of an ancient underwater city with glowing coral reefs and merfolk swimming, national geographic style documentary footage."},
	{ID: "4", Kind: models.KindImage, Title: "Cybernetic Samurai", Model: "Flux Ultra", Author: "Ronin",
		URL:    "https://images.unsplash.com/photo-1620641788421-7a1c342ea42e?q=80&w=1000&auto=format&fit=crop",
		Prompt: "Full body shot of a samurai robot with rusted metal armor holding a laser katana, standing in a foggy bamboo forest, dramatic lighting."},
	{ID: "5", Kind: models.KindVideo, Title: "Cosmic Voyage", Model: "Google Veo", Author: "StarWalker",
		URL:    "https://images.unsplash.com/photo-1451187580459-43490279c0fa?q=80&w=1000&auto=format&fit=crop",
		Prompt: "Hyper-lapse of a spaceship travelling through a colorful nebula, high detail stars, cinematic orchestral atmosphere."},
	{ID: "6", Kind: models.KindImage, Title: "Minimalist Architecture", Model: "DALL-E 3", Author: "ArchiBot",
		URL:    "https://images.unsplash.com/photo-1486325212027-8081e485255e?q=80&w=1000&auto=format&fit=crop",
		Prompt: "Modern minimalist white concrete house in the middle of a desert, bright blue sky, sharp shadows, architectural photography."},
}

// Featured lists the showcase assets of kind. An empty kind returns all of
// them; only VIDEO and IMAGE have entries.
func Featured(kind models.GenerationKind) []models.FeaturedAsset {
	out := make([]models.FeaturedAsset, 0, len(featured))
	for _, a := range featured {
		if kind == "" || a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
