package memory

import (
	"time"

	"github.com/diagnosis/sophies-tours/internal/domain"
)

func surcharge(v float64) *float64 { return &v }

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// SeedTrips is the launch catalog. Add-on prices are per-participant surcharges.
func SeedTrips() []domain.Trip {
	return []domain.Trip{
		{
			ID:                  "1",
			Title:               "Serengeti Safari Adventure",
			Destination:         "Tanzania, East Africa",
			Description:         "Experience the Great Migration in the heart of the Serengeti. Witness millions of wildebeest, zebras, and gazelles as they traverse the endless plains in this once-in-a-lifetime safari adventure.",
			Price:               3500,
			DurationDays:        7,
			MaxParticipants:     12,
			CurrentParticipants: 8,
			StartDate:           domain.NewDate(2024, time.June, 15),
			EndDate:             domain.NewDate(2024, time.June, 22),
			IncludesZinzino:     true,
			ZinzinoPrice:        surcharge(700),
			Highlights: []string{
				"Witness the Great Migration",
				"Big Five wildlife viewing",
				"Luxury tented accommodation",
				"Professional guide included",
				"Traditional Maasai village visit",
			},
			Included: []string{
				"Airport transfers",
				"All meals during safari",
				"Professional English-speaking guide",
				"Game drives in 4x4 safari vehicle",
				"Park entrance fees",
				"Accommodation (luxury tented camps)",
				"Zinzino health program (if selected)",
			},
			Excluded: []string{
				"International flights",
				"Visa fees",
				"Personal expenses",
				"Tips for guide and staff",
				"Travel insurance",
			},
			Status:    domain.TripActive,
			CreatedAt: ts("2024-01-15T10:00:00Z"),
			UpdatedAt: ts("2024-01-20T15:30:00Z"),
		},
		{
			ID:                  "2",
			Title:               "Victoria Falls & Zambezi River",
			Destination:         "Zimbabwe & Zambia",
			Description:         "Discover the thundering majesty of Victoria Falls and experience the wild beauty of the Zambezi River. Adventure activities, wildlife encounters, and breathtaking scenery await.",
			Price:               2800,
			DurationDays:        5,
			MaxParticipants:     8,
			CurrentParticipants: 3,
			StartDate:           domain.NewDate(2024, time.July, 10),
			EndDate:             domain.NewDate(2024, time.July, 15),
			IncludesZinzino:     true,
			ZinzinoPrice:        surcharge(600),
			Highlights: []string{
				"Victoria Falls helicopter flight",
				"Zambezi River sunset cruise",
				"White water rafting",
				"Wildlife viewing in Chobe National Park",
				"Traditional craft market visit",
			},
			Included: []string{
				"Airport transfers",
				"All meals",
				"Accommodation (4-star lodge)",
				"All activities mentioned",
				"Professional guide",
				"Park fees",
				"Zinzino health program (if selected)",
			},
			Excluded: []string{
				"International flights",
				"Visa fees",
				"Personal expenses",
				"Optional activities",
				"Travel insurance",
			},
			Status:    domain.TripActive,
			CreatedAt: ts("2024-01-10T09:00:00Z"),
			UpdatedAt: ts("2024-01-18T12:00:00Z"),
		},
		{
			ID:                  "3",
			Title:               "Cape Town Cultural Experience",
			Destination:         "South Africa",
			Description:         "Immerse yourself in the vibrant culture of Cape Town. From Table Mountain to wine regions, township tours to penguin colonies, experience the diversity of the Mother City.",
			Price:               2200,
			DurationDays:        6,
			MaxParticipants:     10,
			CurrentParticipants: 10,
			StartDate:           domain.NewDate(2024, time.May, 20),
			EndDate:             domain.NewDate(2024, time.May, 26),
			Highlights: []string{
				"Table Mountain cable car",
				"Cape Winelands tour",
				"Township cultural tour",
				"Penguin colony at Boulders Beach",
				"Robben Island historical tour",
			},
			Included: []string{
				"Airport transfers",
				"Daily breakfast",
				"Accommodation (boutique hotel)",
				"All mentioned tours",
				"Professional guide",
				"Entrance fees",
			},
			Excluded: []string{
				"International flights",
				"Lunch and dinner",
				"Personal expenses",
				"Optional activities",
				"Travel insurance",
			},
			Status:    domain.TripFull,
			CreatedAt: ts("2024-01-05T08:00:00Z"),
			UpdatedAt: ts("2024-01-25T16:45:00Z"),
		},
		{
			ID:                  "4",
			Title:               "Madagascar Wildlife Discovery",
			Destination:         "Madagascar",
			Description:         "Explore the unique biodiversity of Madagascar, home to lemurs, baobab trees, and endemic species found nowhere else on Earth. A true paradise for nature lovers.",
			Price:               4200,
			DurationDays:        10,
			MaxParticipants:     8,
			CurrentParticipants: 2,
			StartDate:           domain.NewDate(2024, time.August, 5),
			EndDate:             domain.NewDate(2024, time.August, 15),
			IncludesZinzino:     true,
			ZinzinoPrice:        surcharge(700),
			Highlights: []string{
				"Ring-tailed lemur encounters",
				"Avenue of the Baobabs sunset",
				"Andasibe-Mantadia National Park",
				"Traditional Malagasy village visits",
				"Unique flora and fauna photography",
			},
			Included: []string{
				"Airport transfers",
				"All meals",
				"Accommodation (eco-lodges)",
				"All park fees",
				"Professional naturalist guide",
				"Internal flights",
				"Zinzino health program (if selected)",
			},
			Excluded: []string{
				"International flights",
				"Visa fees",
				"Personal expenses",
				"Tips",
				"Travel insurance",
			},
			Status:    domain.TripActive,
			CreatedAt: ts("2024-01-12T11:30:00Z"),
			UpdatedAt: ts("2024-01-22T14:20:00Z"),
		},
		{
			ID:                  "5",
			Title:               "Kruger National Park Safari",
			Destination:         "South Africa",
			Description:         "Experience one of Africa's most famous game reserves. Home to the Big Five and countless other species, Kruger offers exceptional wildlife viewing opportunities.",
			Price:               1800,
			DurationDays:        4,
			MaxParticipants:     15,
			CurrentParticipants: 6,
			StartDate:           domain.NewDate(2024, time.September, 12),
			EndDate:             domain.NewDate(2024, time.September, 16),
			IncludesZinzino:     true,
			ZinzinoPrice:        surcharge(500),
			Highlights: []string{
				"Big Five wildlife spotting",
				"Early morning and evening game drives",
				"Bush walk with ranger",
				"Traditional boma dinner",
				"Bird watching opportunities",
			},
			Included: []string{
				"Airport transfers from Johannesburg",
				"All meals",
				"Accommodation (safari lodge)",
				"Game drives",
				"Professional ranger guide",
				"Park entrance fees",
				"Zinzino health program (if selected)",
			},
			Excluded: []string{
				"Flights to Johannesburg",
				"Personal expenses",
				"Alcoholic beverages",
				"Optional activities",
				"Travel insurance",
			},
			Status:    domain.TripActive,
			CreatedAt: ts("2024-01-08T13:15:00Z"),
			UpdatedAt: ts("2024-01-19T10:30:00Z"),
		},
		{
			ID:                  "6",
			Title:               "Moroccan Imperial Cities",
			Destination:         "Morocco, North Africa",
			Description:         "Journey through Morocco's imperial cities - Marrakech, Fez, Meknes, and Rabat. Experience the rich history, vibrant souks, and architectural wonders of this enchanting kingdom.",
			Price:               2600,
			DurationDays:        8,
			MaxParticipants:     12,
			CurrentParticipants: 9,
			StartDate:           domain.NewDate(2024, time.October, 3),
			EndDate:             domain.NewDate(2024, time.October, 11),
			Highlights: []string{
				"Djemaa el-Fna square in Marrakech",
				"Fez medina and tanneries",
				"Hassan II Mosque in Casablanca",
				"Atlas Mountains excursion",
				"Traditional hammam experience",
			},
			Included: []string{
				"Airport transfers",
				"Daily breakfast",
				"Accommodation (riads and hotels)",
				"All transportation",
				"Professional guide",
				"Entrance fees to monuments",
			},
			Excluded: []string{
				"International flights",
				"Lunch and dinner",
				"Personal expenses",
				"Tips for guide and drivers",
				"Travel insurance",
			},
			Status:    domain.TripActive,
			CreatedAt: ts("2024-01-07T09:45:00Z"),
			UpdatedAt: ts("2024-01-21T11:15:00Z"),
		},
	}
}
