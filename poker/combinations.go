package poker

// Combinations returns every k-card subset of cards, in lexicographic index
// order. The subsets share no backing storage with each other or the input.
func Combinations(cards []Card, k int) [][]Card {
	n := len(cards)
	if k <= 0 || k > n {
		return nil
	}

	indexes := make([]int, k)
	for i := range indexes {
		indexes[i] = i
	}

	var combos [][]Card
	for {
		combo := make([]Card, k)
		for i, idx := range indexes {
			combo[i] = cards[idx]
		}
		combos = append(combos, combo)

		// advance to the next index tuple
		i := k - 1
		for i >= 0 && indexes[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		indexes[i]++
		for j := i + 1; j < k; j++ {
			indexes[j] = indexes[j-1] + 1
		}
	}
	return combos
}
