package catalog

import "github.com/srgjo27/ticket_booking/internal/core/domain"

var sampleEvents = []SeedEvent{
	{"Rock Concert 2025", "2025-07-15", "City Arena", "Amazing rock concert with top artists featuring electric guitars and powerful vocals", "50.00", 500, "images/rock_concert.jpg"},
	{"Classical Music Evening", "2025-07-20", "Symphony Hall", "Beautiful classical music performance by the National Orchestra", "75.00", 300, "images/classical_music.jpg"},
	{"Jazz Festival", "2025-08-01", "Jazz Lounge", "Smooth jazz music festival with renowned international artists", "60.00", 250, "images/jazz_festival.jpg"},
	{"Pop Music Concert", "2025-08-10", "Stadium Arena", "Chart-topping pop artists performing their greatest hits", "85.00", 800, "images/pop_concert.jpg"},
	{"Comedy Show", "2025-07-25", "Comedy Club", "Hilarious stand-up comedy night with award-winning comedians", "30.00", 200, "images/comedy_show.jpg"},
	{"Theater Play", "2025-08-05", "Grand Theater", "Classic Shakespeare drama performed by professional theater company", "40.00", 400, "images/theater_play.jpg"},
	{"Magic Show", "2025-08-12", "Entertainment Center", "Mind-blowing magic and illusion show for the whole family", "35.00", 350, "images/magic_show.jpg"},
	{"Basketball Championship", "2025-09-18", "Sports Arena", "Exciting championship game between top professional teams", "65.00", 1200, "images/basketball.jpg"},
	{"Football Match", "2025-09-25", "National Stadium", "Premier league football match with international star players", "70.00", 2000, "images/football.jpg"},
	{"Art Exhibition Opening", "2025-10-01", "Modern Art Gallery", "Contemporary art exhibition featuring works by emerging artists", "25.00", 150, "images/art_exhibition.jpg"},
	{"Food Festival", "2025-10-05", "Central Park", "International food festival with cuisines from around the world", "20.00", 500, "images/food_festival.jpg"},
	{"Technology Conference", "2025-10-10", "Convention Center", "Latest innovations in technology and artificial intelligence", "120.00", 600, "images/tech_conference.jpg"},
}

// DefaultEvents returns the built-in sample catalog.
func DefaultEvents() []domain.EventSpec {
	specs, err := toSpecs(sampleEvents)
	if err != nil {
		panic(err)
	}

	return specs
}
