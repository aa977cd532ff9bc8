package importer

// Franchises is the search pool auto mode samples from.
var Franchises = []string{
	"Call of Duty", "FIFA", "Grand Theft Auto", "The Witcher",
	"Assassin's Creed", "Super Mario", "The Legend of Zelda",
	"Final Fantasy", "Resident Evil", "Halo", "God of War",
	"Minecraft", "Fortnite", "Red Dead Redemption", "Cyberpunk",
	"Apex Legends", "Overwatch", "Counter-Strike", "Valorant",
	"Destiny", "Battlefield", "Mass Effect", "Elder Scrolls",
	"Fallout", "Dark Souls", "Sekiro", "Bloodborne",
	"Monster Hunter", "Street Fighter", "Tekken", "Pokemon",
}
