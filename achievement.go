package main

// Achievement definitions
type AchievementDef struct {
	ID          string
	Name        string
	Description string
}

var Achievements = []AchievementDef{
	{"first_light", "First Light", "Win your first round"},
	{"lit_up", "Lit Up", "Win 50 total rounds"},
	{"gridmaster", "Gridmaster", "Win 500 total rounds"},
	{"victor", "Victor", "Win 10 matches"},
	{"dominator", "Dominator", "Win 100 matches"},
	{"streaker", "Streaker", "Win 3 matches in a row"},
	{"unstoppable", "Unstoppable", "Win 10 matches in a row"},
	{"derezzed", "Derezzed", "Crash 100 times"},
	{"survivor", "Survivor", "Play for 1 hour total"},
	{"marathon", "Marathon", "Play for 10 hours total"},
}

// CheckAchievements checks if any new achievements should be unlocked for a player.
// Returns the newly unlocked definitions.
func CheckAchievements(db *DB, playerID int64, won bool) []AchievementDef {
	if db == nil {
		return nil
	}

	stats, err := db.GetStats(playerID)
	if err != nil || stats == nil {
		return nil
	}

	existing, err := db.GetAchievements(playerID)
	if err != nil {
		return nil
	}
	has := make(map[string]bool, len(existing))
	for _, a := range existing {
		has[a] = true
	}

	var unlocked []AchievementDef

	check := func(id string) bool {
		if has[id] {
			return false
		}
		switch id {
		case "first_light":
			return stats.RoundsWon >= 1
		case "lit_up":
			return stats.RoundsWon >= 50
		case "gridmaster":
			return stats.RoundsWon >= 500
		case "victor":
			return stats.Wins >= 10
		case "dominator":
			return stats.Wins >= 100
		case "streaker":
			return won && stats.WinStreak >= 3
		case "unstoppable":
			return won && stats.WinStreak >= 10
		case "derezzed":
			return stats.Crashes >= 100
		case "survivor":
			return stats.Playtime >= 3600
		case "marathon":
			return stats.Playtime >= 36000
		}
		return false
	}

	for _, def := range Achievements {
		if check(def.ID) {
			if newlyUnlocked, err := db.UnlockAchievement(playerID, def.ID); err == nil && newlyUnlocked {
				unlocked = append(unlocked, def)
			}
		}
	}

	return unlocked
}
