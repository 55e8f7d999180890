// Package rating turns the upstream's inconsistent vote fields into a
// single 0-5 star rating.
package rating

import (
	"math"

	"github.com/weiawesome/workshop-explorer/internal/domain"
)

// MaxStars is the top of the star scale.
const MaxStars = 5.0

// signals holds every vote-related value of an item, already parsed.
// Counts of zero mean absent; the score and percent carry an explicit
// presence flag because a reported zero is a real rating.
type signals struct {
	directScore    float64 // fraction in [0,1]
	hasDirectScore bool
	percent        float64 // positive share in [0,100]
	hasPercent     bool
	votesUp        float64
	votesDown      float64
	lifetime       float64
	favorited      float64
}

func collect(d domain.ItemDetail) signals {
	v := d.VoteFields

	var s signals
	scores := []domain.OptionalNumber{v.Score, v.VoteScore}
	s.votesUp = first(v.VotesUp.Float(), v.VoteUp.Float(), v.Upvotes.Float())
	s.votesDown = first(v.VotesDown.Float(), v.VoteDown.Float(), v.Downvotes.Float())
	s.lifetime = first(v.LifetimeVotes.Float(), v.TotalVotes.Float())

	if vd := v.VoteData; vd != nil {
		scores = append(scores, vd.Score)
		s.votesUp = first(s.votesUp, vd.VotesUp.Float())
		s.votesDown = first(s.votesDown, vd.VotesDown.Float())
		s.lifetime = first(s.lifetime, vd.Votes.Float())
	}
	if vs := v.VoteSummary; vs != nil {
		s.lifetime = first(s.lifetime, vs.Total.Float())
	}

	// Values outside their range are not scores; skip them.
	s.directScore, s.hasDirectScore = firstInRange(0, 1, scores...)
	s.percent, s.hasPercent = firstInRange(0, 100, v.PositiveVotesPercent)
	s.favorited = d.Favorited.Float()
	return s
}

// totalVotes prefers an explicit lifetime count over up+down.
func (s signals) totalVotes() float64 {
	if s.lifetime > 0 {
		return s.lifetime
	}
	return s.votesUp + s.votesDown
}

// Normalize computes the rating of an item. It never fails: items without
// any usable signal are unrated. Signals are tried in order: direct
// fractional score, positive percentage, up/down counts, favorites.
func Normalize(d domain.ItemDetail) domain.Rating {
	s := collect(d)
	total := s.totalVotes()

	switch {
	case s.hasDirectScore && total > 0:
		return rated(s.directScore, total)
	case s.hasPercent && total > 0:
		return rated(s.percent/100, total)
	case s.hasPercent && s.percent > 0:
		// A positive percentage without any count stands for one vote.
		return rated(s.percent/100, 1)
	case s.votesUp+s.votesDown > 0:
		return rated(s.votesUp/(s.votesUp+s.votesDown), total)
	case s.favorited > 0:
		return rated(1, s.favorited)
	}

	return domain.UnratedRating()
}

func rated(fraction, votes float64) domain.Rating {
	n := int(votes)
	if n <= 0 {
		return domain.UnratedRating()
	}

	score := Round1(clamp(fraction*MaxStars, 0, MaxStars))
	return domain.Rating{
		Score:     &score,
		Votes:     n,
		HasRating: true,
		Unrated:   false,
	}
}

// Round1 rounds half up to one decimal place.
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

func first(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

// firstInRange returns the first present value within [lo,hi].
func firstInRange(lo, hi float64, vals ...domain.OptionalNumber) (float64, bool) {
	for _, v := range vals {
		if f, ok := v.Get(); ok && f >= lo && f <= hi {
			return f, true
		}
	}
	return 0, false
}
