package bot

import (
	"testing"

	"stayinalign/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestColumnPrefersCenterOnTies(t *testing.T) {
	b := models.NewBoard()
	s := newSearcher(models.Player1, 1, nil)

	col, ok := s.bestColumn(&b, LegalMoves(&b), 3)
	require.True(t, ok)
	assert.Equal(t, 3, col)

	withoutCenter := []models.Move{{Col: 0}, {Col: 4}, {Col: 2}, {Col: 6}}
	col, ok = s.bestColumn(&b, withoutCenter, 3)
	require.True(t, ok)
	assert.Equal(t, 2, col)
}

func TestBestColumnTakesRootWin(t *testing.T) {
	b := parseBoard(t,
		".......",
		".......",
		".......",
		".......",
		"OO.....",
		"XXX....",
	)
	before := b
	s := newSearcher(models.Player1, DefaultDepth, nil)

	col, ok := s.bestColumn(&b, LegalMoves(&b), 5)
	require.True(t, ok)
	assert.Equal(t, 3, col)
	assert.Equal(t, rootWinScore, s.scoreRoot(&b, models.Move{Col: 3, Row: 0}, 5))
	assert.Equal(t, before, b, "search must restore the board")
	assert.Positive(t, s.nodes)
}

func TestBestColumnWithoutCandidates(t *testing.T) {
	b := models.NewBoard()
	s := newSearcher(models.Player1, DefaultDepth, nil)

	col, ok := s.bestColumn(&b, nil, 1)
	assert.False(t, ok)
	assert.Equal(t, -1, col)
}

func TestScoreSeesOpponentWin(t *testing.T) {
	// Whatever X plays away from column 3, O completes its row there.
	b := parseBoard(t,
		".......",
		".......",
		".......",
		".......",
		"XX.....",
		"OOO...X",
	)
	s := newSearcher(models.Player1, DefaultDepth, nil)

	assert.Equal(t, -winScore, s.scoreRoot(&b, models.Move{Col: 6, Row: 1}, 4))
	assert.Greater(t, s.scoreRoot(&b, models.Move{Col: 3, Row: 0}, 4), -winScore)
}

func TestHeuristic(t *testing.T) {
	b := parseBoard(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"OOO....",
	)
	s := newSearcher(models.Player1, DefaultDepth, nil)
	assert.Equal(t, -immediateWinWeight, s.heuristic(&b, 0, 5))

	s = newSearcher(models.Player2, DefaultDepth, nil)
	assert.Equal(t, immediateWinWeight, s.heuristic(&b, 0, 5))
}

func TestBombScoreHorizon(t *testing.T) {
	// The bomb removes the O capping X's row.
	b := parseBoard(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"XXXO...",
	)
	bombs := []models.Bomb{{Row: 1, Col: 3, ExplodeInRound: 5}}
	s := newSearcher(models.Player1, DefaultDepth, bombs)

	assert.Equal(t, bombWeight, s.bombScore(&b, 3, 2), "bomb inside the horizon")
	assert.Zero(t, s.bombScore(&b, 3, 1), "bomb beyond the horizon")
	assert.Equal(t, bombWeight, s.heuristic(&b, 3, 2))
	assert.Equal(t, models.Player2, b[0][3], "projection must not touch the board")
}
