package assignment

import (
	"testing"

	"cleanly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRankFilters drops cleaners who declined the job, don't offer the
// service, or sit outside the effective radius.
func TestRankFilters(t *testing.T) {
	rejections := newFakeRejectionRepo()
	require.NoError(t, rejections.Upsert(models.NewJobRejection("declined", "bk-1")))
	ranker := NewDefaultCandidateRanker(rejections, PostcodeDistance{})

	b := testBooking("bk-1")
	pool := []models.User{
		*testCleaner("keeper"),
		*testCleaner("declined"),
		*testCleaner("deep-only", func(u *models.User) {
			u.Cleaner.ServiceTypes = []models.ServiceType{models.ServiceTypeDeep}
		}),
		*testCleaner("tight-radius", func(u *models.User) {
			u.Cleaner.Radius = 3 // Stockwell to Clapham scores 4
		}),
		*testCleaner("no-postcode", func(u *models.User) {
			u.Cleaner.Postcode = ""
			u.Cleaner.Radius = 50
		}),
		*testClient("not-a-cleaner"),
	}

	ranked, err := ranker.Rank(b, pool)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "keeper", ranked[0].Cleaner.ID)
	assert.Equal(t, 4.0, ranked[0].Distance)
}

// TestRankServiceAllowList admits matching types and treats an empty list
// as taking any job.
func TestRankServiceAllowList(t *testing.T) {
	ranker := NewDefaultCandidateRanker(newFakeRejectionRepo(), PostcodeDistance{})
	b := testBooking("bk-1", func(b *models.Booking) {
		b.Service.Type = models.ServiceTypeDeep
	})
	pool := []models.User{
		*testCleaner("any"), // no allow-list
		*testCleaner("deep-listed", func(u *models.User) {
			u.Cleaner.ServiceTypes = []models.ServiceType{models.ServiceTypeRegular, models.ServiceTypeDeep}
		}),
		*testCleaner("regular-only", func(u *models.User) {
			u.Cleaner.ServiceTypes = []models.ServiceType{models.ServiceTypeRegular}
		}),
	}

	ranked, err := ranker.Rank(b, pool)
	require.NoError(t, err)
	ids := rankedIDs(ranked)
	assert.ElementsMatch(t, []string{"any", "deep-listed"}, ids)
}

// TestRankOrdering sorts by rating, then experience, then distance, with the
// id as the final tiebreak, and keeps only the top five.
func TestRankOrdering(t *testing.T) {
	ranker := NewDefaultCandidateRanker(newFakeRejectionRepo(), PostcodeDistance{})
	b := testBooking("bk-1")

	pool := []models.User{
		*testCleaner("vet", func(u *models.User) {
			u.Cleaner.Rating, u.Cleaner.TotalJobs = 4.5, 100
			u.Cleaner.Postcode = "SW8 1AA"
		}),
		*testCleaner("pro", func(u *models.User) {
			u.Cleaner.Rating, u.Cleaner.TotalJobs = 4.9, 50
		}),
		*testCleaner("near", func(u *models.User) {
			u.Cleaner.Rating, u.Cleaner.TotalJobs = 4.5, 5
			u.Cleaner.Postcode = "SW9 9AA"
		}),
		*testCleaner("new", func(u *models.User) {
			u.Cleaner.Rating, u.Cleaner.TotalJobs = 4.5, 5
			u.Cleaner.Postcode = "SW4 1AA" // same outward code as the job
		}),
		*testCleaner("b-tie", func(u *models.User) {
			u.Cleaner.Rating, u.Cleaner.TotalJobs = 4.0, 10
		}),
		*testCleaner("a-tie", func(u *models.User) {
			u.Cleaner.Rating, u.Cleaner.TotalJobs = 4.0, 10
		}),
	}

	ranked, err := ranker.Rank(b, pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"pro", "vet", "new", "near", "a-tie"}, rankedIDs(ranked))
}

// TestRankPersonalRadiusCappedAtFifteen keeps the hard travel ceiling even
// for cleaners who set a wider personal radius.
func TestRankPersonalRadiusCappedAtFifteen(t *testing.T) {
	ranker := NewDefaultCandidateRanker(newFakeRejectionRepo(), PostcodeDistance{})
	b := testBooking("bk-1", func(b *models.Booking) {
		b.Location.Address.Postcode = "SE5 8AA"
	})
	pool := []models.User{
		// Camden to Camberwell scores exactly 15, right at the ceiling.
		*testCleaner("at-cap", func(u *models.User) {
			u.Cleaner.Postcode = "NW1 2DB"
			u.Cleaner.Radius = 40
		}),
		*testCleaner("unmeasurable", func(u *models.User) {
			u.Cleaner.Postcode = ""
			u.Cleaner.Radius = 40
		}),
	}

	ranked, err := ranker.Rank(b, pool)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "at-cap", ranked[0].Cleaner.ID)
	assert.Equal(t, 15.0, ranked[0].Distance)
}

func rankedIDs(ranked []RankedCleaner) []string {
	ids := make([]string, len(ranked))
	for i, c := range ranked {
		ids[i] = c.Cleaner.ID
	}
	return ids
}
