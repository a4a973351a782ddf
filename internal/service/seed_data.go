package service

import "rex-go/internal/model"

type seedCategory struct {
	category model.Category
	entries  []model.ContentEntry
}

var defaultSeed = []seedCategory{
	{
		category: model.Category{
			Name:        "Personal Growth",
			Description: "Reflections on my journey of self-improvement and growth",
			Type:        model.CategoryPersonalGrowth,
		},
		entries: []model.ContentEntry{{
			Title: "On Embracing Vulnerability",
			Content: "For a long time I thought strength meant keeping everything contained. " +
				"I have since learned that real connection, with other people and with myself, only starts when I let the guarded parts be seen.\n\n" +
				"Being seen is frightening. There is always the fear of being judged. " +
				"Yet every time I share something that feels fragile I find connection instead of the rejection I expected, and that keeps me practising.",
		}},
	},
	{
		category: model.Category{
			Name:        "Creative Process",
			Description: "Thoughts on creativity, inspiration, and artistic expression",
			Type:        model.CategoryCreative,
		},
		entries: []model.ContentEntry{{
			Title: "The Space Between Inspiration and Creation",
			Content: "Between the spark of an idea and the finished piece there is a strange, alive space. " +
				"Some days the work flows as if it was waiting for permission. Other days it feels like digging through noise to find one honest line.\n\n" +
				"I have stopped treating that struggle as separate from the work. The tension between what I imagine and what appears is the process itself, " +
				"and the result is often better for having drifted away from the first plan.",
		}},
	},
	{
		category: model.Category{
			Name:        "Relationships & Connection",
			Description: "Exploring human connection, love, and relationships",
			Type:        model.CategoryRelationshipReflections,
		},
		entries: []model.ContentEntry{{
			Title: "The Art of Listening",
			Content: "Listening, really listening, may be the rarest gift one person can give another. " +
				"My deepest conversations all share one thing: I felt heard rather than advised.\n\n" +
				"When I stop rehearsing my reply and stay with the other person's words, the conversation opens up. " +
				"It takes patience and comfort with silence, and I am still learning both.",
		}},
	},
	{
		category: model.Category{
			Name:        "Philosophy & Worldview",
			Description: "My personal philosophy and perspective on life",
			Type:        model.CategoryPhilosophy,
		},
		entries: []model.ContentEntry{{
			Title: "Finding Meaning in Uncertainty",
			Content: "I have come to believe meaning is made rather than found. " +
				"We are not handed a purpose; we shape one, most of all when plans fall apart.\n\n" +
				"Uncertainty forces me to ask what actually matters and to choose a response on purpose. " +
				"It is less about answers and more about meeting the unknown with curiosity instead of fear.",
		}},
	},
	{
		category: model.Category{
			Name:        "Professional Journey",
			Description: "Career reflections and professional growth",
			Type:        model.CategoryProfessionalJourney,
		},
	},
}
