package linker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fwexport/internal/filmweb"
	"fwexport/internal/imdb"
	"fwexport/internal/imdb/mocks"
)

func matrixTitle() *filmweb.Title {
	return &filmweb.Title{
		ID:       628,
		Name:     "Matrix",
		Duration: 136,
		Year:     filmweb.Year{Start: 1999, End: 1999},
		Alternates: []filmweb.AlternateTitle{
			{Label: "USA", Title: "The Matrix"},
			{Label: "Polska", Title: "Matrix"},
		},
	}
}

func TestLinker_Resolve_FirstStrategyWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := mocks.NewMockSearcher(ctrl)

	search.EXPECT().
		Advanced(gomock.Any(), "Matrix", 1999, 1999).
		Return(&imdb.Candidate{ID: "0133093", Title: "The Matrix", Duration: 136}, nil)

	match := New(search, nil).Resolve(context.Background(), matrixTitle())

	require.NotNil(t, match.Candidate)
	assert.Equal(t, "0133093", match.Candidate.ID)
	assert.Equal(t, StatusConfirmed, match.Status)
}

func TestLinker_Resolve_FallsBackToFind(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := mocks.NewMockSearcher(ctrl)

	gomock.InOrder(
		search.EXPECT().
			Advanced(gomock.Any(), "Matrix", 1999, 1999).
			Return(nil, imdb.ErrZeroResults),
		search.EXPECT().
			Find(gomock.Any(), "Matrix", 1999).
			Return(&imdb.Candidate{ID: "0133093", Title: "The Matrix", Duration: 136}, nil),
	)

	match := New(search, nil).Resolve(context.Background(), matrixTitle())

	assert.Equal(t, StatusConfirmed, match.Status)
}

func TestLinker_Resolve_AdvancesToNextVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := mocks.NewMockSearcher(ctrl)

	gomock.InOrder(
		search.EXPECT().
			Advanced(gomock.Any(), "Matrix", 1999, 1999).
			Return(nil, imdb.ErrZeroResults),
		search.EXPECT().
			Find(gomock.Any(), "Matrix", 1999).
			Return(nil, imdb.ErrInvalidDuration),
		search.EXPECT().
			Advanced(gomock.Any(), "The Matrix", 1999, 1999).
			Return(&imdb.Candidate{ID: "0133093", Title: "The Matrix", Duration: 136}, nil),
	)

	match := New(search, nil).Resolve(context.Background(), matrixTitle())

	assert.Equal(t, StatusConfirmed, match.Status)
}

func TestLinker_Resolve_TransportErrorAdvances(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := mocks.NewMockSearcher(ctrl)

	gomock.InOrder(
		search.EXPECT().
			Advanced(gomock.Any(), "Matrix", 1999, 1999).
			Return(nil, errors.New("execute request: connection refused")),
		search.EXPECT().
			Find(gomock.Any(), "Matrix", 1999).
			Return(&imdb.Candidate{ID: "0133093", Title: "The Matrix", Duration: 136}, nil),
	)

	match := New(search, nil).Resolve(context.Background(), matrixTitle())

	assert.Equal(t, StatusConfirmed, match.Status)
}

func TestLinker_Resolve_ExhaustedQueueIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := mocks.NewMockSearcher(ctrl)

	// Both strategies miss for each of the three ranked variants,
	// in strictly descending score order.
	gomock.InOrder(
		search.EXPECT().Advanced(gomock.Any(), "Matrix", 1999, 1999).Return(nil, imdb.ErrZeroResults),
		search.EXPECT().Find(gomock.Any(), "Matrix", 1999).Return(nil, imdb.ErrZeroResults),
		search.EXPECT().Advanced(gomock.Any(), "The Matrix", 1999, 1999).Return(nil, imdb.ErrZeroResults),
		search.EXPECT().Find(gomock.Any(), "The Matrix", 1999).Return(nil, imdb.ErrZeroResults),
		search.EXPECT().Advanced(gomock.Any(), "Matrix", 1999, 1999).Return(nil, imdb.ErrZeroResults),
		search.EXPECT().Find(gomock.Any(), "Matrix", 1999).Return(nil, imdb.ErrZeroResults),
	)

	match := New(search, nil).Resolve(context.Background(), matrixTitle())

	assert.Nil(t, match.Candidate)
	assert.Equal(t, StatusNotFound, match.Status)
}

func TestLinker_Resolve_DivergentRuntimeNeedsReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := mocks.NewMockSearcher(ctrl)

	search.EXPECT().
		Advanced(gomock.Any(), "Matrix", 1999, 1999).
		Return(&imdb.Candidate{ID: "0106062", Title: "Matrix", Duration: 60}, nil)

	match := New(search, nil).Resolve(context.Background(), matrixTitle())

	assert.Equal(t, StatusNeedsReview, match.Status)
}

func TestLinker_Resolve_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := mocks.NewMockSearcher(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	match := New(search, nil).Resolve(ctx, matrixTitle())

	assert.Equal(t, StatusNotFound, match.Status)
}

func TestLinker_Resolve_SimilarityIgnoresCaseAndPunctuation(t *testing.T) {
	ctrl := gomock.NewController(t)
	search := mocks.NewMockSearcher(ctrl)

	search.EXPECT().
		Advanced(gomock.Any(), "Matrix", 1999, 1999).
		Return(&imdb.Candidate{ID: "0133093", Title: "MATRIX!", Duration: 136}, nil)

	match := New(search, nil).Resolve(context.Background(), matrixTitle())

	assert.InDelta(t, 1.0, match.Similarity, 0.001)
}
