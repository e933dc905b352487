package feed

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func zoneRec(id int64, price string) ZoneRecord {
	return ZoneRecord{ZoneID: id, Capacity: 10, Price: decimal.RequireFromString(price), Name: "z"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		rec        BaseEventRecord
		wantReason string
	}{
		{
			name: "no events is valid",
			rec:  BaseEventRecord{BaseEventID: 1},
		},
		{
			name: "distinct zones",
			rec: BaseEventRecord{BaseEventID: 1, Events: []EventRecord{
				{EventID: 1, Zones: []ZoneRecord{zoneRec(1, "10"), zoneRec(2, "20")}},
			}},
		},
		{
			name: "same zone id across sibling occurrences is valid",
			rec: BaseEventRecord{BaseEventID: 1, Events: []EventRecord{
				{EventID: 1, Zones: []ZoneRecord{zoneRec(7, "10")}},
				{EventID: 2, Zones: []ZoneRecord{zoneRec(7, "10")}},
			}},
		},
		{
			name: "duplicate zone within one occurrence",
			rec: BaseEventRecord{BaseEventID: 1, Events: []EventRecord{
				{EventID: 1, Zones: []ZoneRecord{zoneRec(1, "10")}},
				{EventID: 2, Zones: []ZoneRecord{zoneRec(3, "10"), zoneRec(4, "12"), zoneRec(3, "15")}},
			}},
			wantReason: reasonDuplicateZone,
		},
		{
			name: "negative capacity",
			rec: BaseEventRecord{BaseEventID: 1, Events: []EventRecord{
				{EventID: 1, Zones: []ZoneRecord{{ZoneID: 1, Capacity: -1, Price: decimal.NewFromInt(1)}}},
			}},
			wantReason: reasonNegativeCapacity,
		},
		{
			name: "negative price",
			rec: BaseEventRecord{BaseEventID: 1, Events: []EventRecord{
				{EventID: 1, Zones: []ZoneRecord{zoneRec(1, "-0.01")}},
			}},
			wantReason: reasonNegativePrice,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.rec)
			if tc.wantReason == "" {
				require.NoError(t, err)
				require.True(t, IsValid(tc.rec))
				return
			}

			require.False(t, IsValid(tc.rec))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tc.wantReason, verr.Reason)
			require.Equal(t, tc.rec.BaseEventID, verr.BaseEventID)
		})
	}
}

func TestValidate_ReportsOffendingIDs(t *testing.T) {
	rec := BaseEventRecord{BaseEventID: 1591, Events: []EventRecord{
		{EventID: 1642, Zones: []ZoneRecord{zoneRec(186, "75.00"), zoneRec(186, "65.00")}},
	}}

	err := Validate(rec)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, int64(1642), verr.EventID)
	require.Equal(t, int64(186), verr.ZoneID)
	require.Contains(t, err.Error(), "duplicate zone id")
}

func TestValidate_FixtureFlagsDuplicateZones(t *testing.T) {
	doc, err := Parse(readFixture(t))
	require.NoError(t, err)

	var valid []int64
	for _, be := range doc.Output.BaseEvents {
		if IsValid(be) {
			valid = append(valid, be.BaseEventID)
		}
	}
	require.Equal(t, []int64{291, 322}, valid)
}
