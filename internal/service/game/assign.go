package game

import "math/rand/v2"

// AssignRoles 按人数配置生成本局名单。
// settings 必须已经过 Clamp，否则平民人数可能为负，结果未定义。
func AssignRoles(settings Settings, pair WordPair, rng *rand.Rand, labeler *Labeler) []Player {
	roles := make([]RoleKind, 0, settings.PlayerCount)
	for range settings.UndercoverCount {
		roles = append(roles, ROLE_UNDERCOVER)
	}
	for range settings.MrWhiteCount {
		roles = append(roles, ROLE_MR_WHITE)
	}
	for len(roles) < settings.PlayerCount {
		roles = append(roles, ROLE_CIVILIAN)
	}

	// Shuffle 是 Fisher-Yates，所有可区分的排列等概率出现
	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	players := make([]Player, len(roles))
	for id, role := range roles {
		players[id] = Player{
			ID:          id,
			Name:        labeler.PlayerName(id),
			Role:        role,
			Word:        wordFor(role, pair),
			IsAlive:     true,
			HasSeenCard: false,
		}
	}

	return players
}

func wordFor(role RoleKind, pair WordPair) string {
	switch role {
	case ROLE_CIVILIAN:
		return pair.Civilian
	case ROLE_UNDERCOVER:
		return pair.Undercover
	default:
		return MR_WHITE_WORD
	}
}
