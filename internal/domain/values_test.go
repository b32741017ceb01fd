package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstant_Time(t *testing.T) {
	want := time.Date(2026, 10, 17, 7, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   Instant
		ok   bool
	}{
		{"timestamp", InstantFromTime(want), true},
		{"rfc3339", InstantFromString("2026-10-17T07:30:00Z"), true},
		{"rfc3339 offset", InstantFromString("2026-10-17T09:30:00+02:00"), true},
		{"naive is utc", InstantFromString("2026-10-17T07:30:00"), true},
		{"js date string", InstantFromString("Sat Oct 17 2026 09:30:00 GMT+0200 (Central European Summer Time)"), true},
		{"millis", InstantFromMillis(float64(want.UnixMilli())), true},
	}
	for _, c := range cases {
		got, ok := c.in.Time()
		assert.Equal(t, c.ok, ok, c.name)
		assert.True(t, want.Equal(got), "%s: got %s", c.name, got)
	}
}

func TestInstant_TimeRejects(t *testing.T) {
	for name, in := range map[string]Instant{
		"none":         {},
		"empty string": InstantFromString("  "),
		"garbage":      InstantFromString("last tuesday"),
		"zero millis":  InstantFromMillis(0),
		"huge millis":  InstantFromMillis(9e15),
		"zero ts":      {Kind: InstantTimestamp},
	} {
		_, ok := in.Time()
		assert.False(t, ok, name)
	}
}

func TestInstant_UnmarshalDynamoDBAttributeValue(t *testing.T) {
	var i Instant
	require.NoError(t, i.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"seconds":     &types.AttributeValueMemberN{Value: "1792227600"},
		"nanoseconds": &types.AttributeValueMemberN{Value: "500"},
	}}))
	assert.Equal(t, Instant{Kind: InstantTimestamp, Seconds: 1792227600, Nanos: 500}, i)

	require.NoError(t, i.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"other": &types.AttributeValueMemberS{Value: "x"},
	}}))
	assert.Equal(t, InstantNone, i.Kind)

	require.NoError(t, i.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberBOOL{Value: true}))
	assert.Equal(t, InstantNone, i.Kind)
}

func TestFlagAndText_OnlyMatchingTypes(t *testing.T) {
	var f Flag
	require.NoError(t, f.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberBOOL{Value: false}))
	assert.True(t, f.IsExplicitlyFalse())
	require.NoError(t, f.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberN{Value: "0"}))
	assert.False(t, f.IsExplicitlyFalse())

	var txt Text
	require.NoError(t, txt.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberN{Value: "900"}))
	assert.False(t, txt.Valid)
	assert.Equal(t, "", txt.Trimmed())
}

func TestOffset_Unmarshal(t *testing.T) {
	var o Offset
	require.NoError(t, o.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberN{Value: "-299.6"}))
	assert.Equal(t, NewOffset(-300), o)
	require.NoError(t, o.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberS{Value: "60"}))
	assert.Equal(t, 0, o.OrZero())
}

func TestValues_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Medication{
		MedicationID: "m1",
		Time:         NewText("09:00"),
		IsActive:     NewFlag(true),
	})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"09:00"`)
	assert.Contains(t, string(b), `null`)
}
