package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoundRobinEvenTeams(t *testing.T) {
	fixtures := GenerateRoundRobin([]int{1, 2, 3, 4})

	// n*(n-1)/2 матчей в n-1 туров.
	require.Len(t, fixtures, 6)

	pairs := make(map[string]bool)
	perMatchday := make(map[int]map[int]bool)
	for _, f := range fixtures {
		assert.NotEqual(t, f.HomeTeamID, f.AwayTeamID)
		assert.GreaterOrEqual(t, f.Matchday, 1)
		assert.LessOrEqual(t, f.Matchday, 3)

		lo, hi := f.HomeTeamID, f.AwayTeamID
		if lo > hi {
			lo, hi = hi, lo
		}
		key := fmt.Sprintf("%d-%d", lo, hi)
		assert.False(t, pairs[key], "pair %s scheduled twice", key)
		pairs[key] = true

		if perMatchday[f.Matchday] == nil {
			perMatchday[f.Matchday] = make(map[int]bool)
		}
		assert.False(t, perMatchday[f.Matchday][f.HomeTeamID], "team %d plays twice on matchday %d", f.HomeTeamID, f.Matchday)
		assert.False(t, perMatchday[f.Matchday][f.AwayTeamID], "team %d plays twice on matchday %d", f.AwayTeamID, f.Matchday)
		perMatchday[f.Matchday][f.HomeTeamID] = true
		perMatchday[f.Matchday][f.AwayTeamID] = true
	}
	assert.Len(t, pairs, 6)
}

func TestGenerateRoundRobinOddTeamsGetBye(t *testing.T) {
	fixtures := GenerateRoundRobin([]int{10, 20, 30, 40, 50})

	// Пять команд: 10 матчей, 5 туров, в каждом туре одна отдыхает.
	require.Len(t, fixtures, 10)

	perMatchday := make(map[int]int)
	for _, f := range fixtures {
		assert.LessOrEqual(t, f.Matchday, 5)
		perMatchday[f.Matchday]++
	}
	for matchday, count := range perMatchday {
		assert.Equal(t, 2, count, "matchday %d should have exactly 2 fixtures", matchday)
	}
}

func TestGenerateRoundRobinAlternatesHomeForFixedTeam(t *testing.T) {
	fixtures := GenerateRoundRobin([]int{1, 2, 3, 4})

	home, away := 0, 0
	for _, f := range fixtures {
		if f.HomeTeamID == 1 {
			home++
		}
		if f.AwayTeamID == 1 {
			away++
		}
	}
	assert.Equal(t, 3, home+away)
	assert.NotZero(t, away, "fixed team should not host every fixture")
}

func TestGenerateRoundRobinTooFewTeams(t *testing.T) {
	assert.Nil(t, GenerateRoundRobin(nil))
	assert.Nil(t, GenerateRoundRobin([]int{1}))
}

func TestGenerateRoundRobinDoesNotMutateInput(t *testing.T) {
	ids := []int{1, 2, 3}
	GenerateRoundRobin(ids)
	assert.Equal(t, []int{1, 2, 3}, ids)
}
