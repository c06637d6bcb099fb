package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"redacao_service/internal/domain"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestLiveClassWindow(t *testing.T) {
	loc := saoPaulo(t)

	t.Run("Resolves In Configured Timezone", func(t *testing.T) {
		c := &domain.LiveClass{Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"}

		start, end, err := c.Window(loc)
		require.NoError(t, err)
		require.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, loc), start)
		require.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, loc), end)
	})

	t.Run("Start Must Precede End", func(t *testing.T) {
		c := &domain.LiveClass{Date: "2025-03-10", StartTime: "10:00", EndTime: "09:00"}

		_, _, err := c.Window(loc)
		require.Error(t, err)
	})

	t.Run("Bad Time Format", func(t *testing.T) {
		c := &domain.LiveClass{Date: "2025-03-10", StartTime: "9am", EndTime: "10:00"}

		_, _, err := c.Window(loc)
		require.Error(t, err)
	})
}

func TestStatusAt(t *testing.T) {
	loc := saoPaulo(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	end := time.Date(2025, 3, 10, 10, 0, 0, 0, loc)

	cases := []struct {
		name string
		now  time.Time
		want domain.ClassStatus
	}{
		{"Before Start", start.Add(-time.Minute), domain.ClassScheduled},
		{"Exactly At Start", start, domain.ClassLive},
		{"Midway", start.Add(30 * time.Minute), domain.ClassLive},
		{"Exactly At End", end, domain.ClassLive},
		{"Just After End", end.Add(time.Second), domain.ClassEnded},
		{"Long After End", end.Add(3 * time.Hour), domain.ClassEnded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, domain.StatusAt(start, end, tc.now))
		})
	}
}

func TestDisplayableAt(t *testing.T) {
	loc := saoPaulo(t)
	end := time.Date(2025, 3, 10, 10, 0, 0, 0, loc)

	t.Run("Ended But Within Grace Is Still Displayed", func(t *testing.T) {
		now := end.Add(30 * time.Minute)
		require.Equal(t, domain.ClassEnded, domain.StatusAt(end.Add(-time.Hour), end, now))
		require.True(t, domain.DisplayableAt(end, now))
	})

	t.Run("Exactly At Grace Boundary", func(t *testing.T) {
		require.True(t, domain.DisplayableAt(end, end.Add(domain.DisplayGrace)))
	})

	t.Run("Past Grace Is Not Fetched", func(t *testing.T) {
		require.False(t, domain.DisplayableAt(end, end.Add(domain.DisplayGrace).Add(time.Minute)))
	})
}

func TestLiveClassAuthorizedFor(t *testing.T) {
	c := &domain.LiveClass{AuthorizedClasses: []string{"turma-a", "turma-b"}, VisitorAllowed: false}

	t.Run("Authorized Class Code", func(t *testing.T) {
		require.True(t, c.AuthorizedFor("turma-a", false))
	})

	t.Run("Unauthorized Class Code", func(t *testing.T) {
		require.False(t, c.AuthorizedFor("turma-z", false))
	})

	t.Run("Visitor Blocked", func(t *testing.T) {
		require.False(t, c.AuthorizedFor("", true))
	})

	t.Run("Visitor Allowed", func(t *testing.T) {
		open := &domain.LiveClass{VisitorAllowed: true}
		require.True(t, open.AuthorizedFor("", true))
	})

	t.Run("No Restriction Admits Everyone", func(t *testing.T) {
		open := &domain.LiveClass{}
		require.True(t, open.AuthorizedFor("turma-z", false))
	})
}

func TestLiveClassValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		c := &domain.LiveClass{Title: "Aula ao vivo", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"}
		require.NoError(t, c.Validate())
	})

	t.Run("Start Equal To End", func(t *testing.T) {
		c := &domain.LiveClass{Title: "Aula", Date: "2025-03-10", StartTime: "09:00", EndTime: "09:00"}
		require.Error(t, c.Validate())
	})

	t.Run("Missing Title", func(t *testing.T) {
		c := &domain.LiveClass{Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"}
		require.Error(t, c.Validate())
	})
}
