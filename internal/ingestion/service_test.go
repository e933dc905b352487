package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aevon-lab/catalog-sync/internal/feed"
	feedmocks "github.com/aevon-lab/catalog-sync/internal/mocks/feed"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<eventList version="1.0">
  <output>
    <base_event base_event_id="1" sell_mode="online" title="Concert">
      <event event_start_date="2024-08-22T10:00:00" event_end_date="2024-08-22T12:00:00" event_id="10" sell_from="2024-07-01T00:00:00" sell_to="2024-08-22T09:00:00" sold_out="false">
        <zone zone_id="1" capacity="100" price="10.00" name="Grada" numbered="false" />
        <zone zone_id="2" capacity="50" price="25.00" name="Platea" numbered="true" />
      </event>
      <event event_start_date="yesterday at noon-ish" event_end_date="2024-08-23T12:00:00" event_id="11" sell_from="2024-07-01T00:00:00" sell_to="2024-08-23T09:00:00" sold_out="false">
        <zone zone_id="1" capacity="100" price="10.00" name="Grada" numbered="false" />
      </event>
    </base_event>
    <base_event base_event_id="2" sell_mode="offline" title="Duplicates">
      <event event_start_date="2024-08-22T10:00:00" event_end_date="2024-08-22T12:00:00" event_id="20" sell_from="2024-07-01T00:00:00" sell_to="2024-08-22T09:00:00" sold_out="false">
        <zone zone_id="5" capacity="1" price="1.00" name="A" numbered="false" />
        <zone zone_id="5" capacity="1" price="2.00" name="B" numbered="false" />
      </event>
    </base_event>
  </output>
</eventList>`

func TestService_Load(t *testing.T) {
	src := feedmocks.NewSource(t)
	src.EXPECT().Fetch(mock.Anything).Return([]byte(sampleFeed), nil).Once()

	res, err := NewService(src, nil).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, res.BaseEvents, 1)
	be := res.BaseEvents[0]
	require.Equal(t, int64(1), be.ID)
	require.Len(t, be.Events, 1)
	require.Len(t, be.Events[0].Zones, 2)

	require.Len(t, res.Warnings, 2)
	var dpe *DateParseError
	require.True(t, errors.As(res.Warnings[0], &dpe))
	require.Equal(t, "yesterday at noon-ish", dpe.Value)
	var verr *feed.ValidationError
	require.True(t, errors.As(res.Warnings[1], &verr))
	require.Equal(t, int64(2), verr.BaseEventID)
}

func TestService_LoadFetchError(t *testing.T) {
	src := feedmocks.NewSource(t)
	src.EXPECT().Fetch(mock.Anything).Return(nil, fmt.Errorf("connection refused")).Once()

	res, err := NewService(src, nil).Load(context.Background())
	require.Nil(t, res)
	require.ErrorContains(t, err, "connection refused")
}

func TestService_LoadMalformed(t *testing.T) {
	src := feedmocks.NewSource(t)
	src.EXPECT().Fetch(mock.Anything).Return([]byte("<eventList><output>"), nil).Once()

	res, err := NewService(src, nil).Load(context.Background())
	require.Nil(t, res)

	var malformed *feed.MalformedFeedError
	require.True(t, errors.As(err, &malformed))
}

func TestService_LoadStopsWhenCancelledAfterFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	src := feedmocks.NewSource(t)
	src.EXPECT().Fetch(mock.Anything).RunAndReturn(func(context.Context) ([]byte, error) {
		cancel()
		return []byte(sampleFeed), nil
	}).Once()

	res, err := NewService(src, nil).Load(ctx)
	require.Nil(t, res)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewService_PanicsWithoutSource(t *testing.T) {
	require.Panics(t, func() { NewService(nil, nil) })
}
