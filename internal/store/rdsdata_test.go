package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRDS struct {
	out   *rdsdata.ExecuteStatementOutput
	err   error
	calls []*rdsdata.ExecuteStatementInput
}

func (f *fakeRDS) ExecuteStatement(_ context.Context, in *rdsdata.ExecuteStatementInput, _ ...func(*rdsdata.Options)) (*rdsdata.ExecuteStatementOutput, error) {
	f.calls = append(f.calls, in)
	return f.out, f.err
}

var fullOpts = RDSDataOptions{ResourceARN: "arn:cluster", SecretARN: "arn:secret", Database: "portal"}

func TestRDSDataAvailability(t *testing.T) {
	assert.True(t, NewRDSDataExecutor(&fakeRDS{}, fullOpts, nil).Available())
	assert.False(t, NewRDSDataExecutor(&fakeRDS{}, RDSDataOptions{ResourceARN: "arn"}, nil).Available())
	assert.False(t, NewRDSDataExecutor(nil, fullOpts, nil).Available())
}

func TestRDSDataUnavailableFails(t *testing.T) {
	fake := &fakeRDS{}
	exec := NewRDSDataExecutor(fake, RDSDataOptions{}, nil)

	res := exec.Execute(context.Background(), Statement{SQL: "SELECT 1"})
	assert.Equal(t, KindFailed, res.Kind())
	assert.ErrorIs(t, res.Err(), ErrStoreUnavailable)
	assert.Empty(t, fake.calls)
}

func TestRDSDataDecodesRecords(t *testing.T) {
	fake := &fakeRDS{out: &rdsdata.ExecuteStatementOutput{
		ColumnMetadata: []types.ColumnMetadata{
			{Name: aws.String("id")},
			{Name: aws.String("rating")},
			{Name: aws.String("votes")},
			{Name: aws.String("demo_url")},
			{Name: aws.String("active")},
		},
		Records: [][]types.Field{{
			&types.FieldMemberStringValue{Value: "1"},
			&types.FieldMemberDoubleValue{Value: 4.5},
			&types.FieldMemberLongValue{Value: 12},
			&types.FieldMemberIsNull{Value: true},
			&types.FieldMemberBooleanValue{Value: true},
		}},
	}}
	exec := NewRDSDataExecutor(fake, fullOpts, nil)
	created := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	res := exec.Execute(context.Background(), Statement{
		SQL:  "SELECT * FROM prototypes WHERE id = :p1 AND created_at > :p2",
		Args: []any{"1", created},
	})

	require.Equal(t, KindOK, res.Kind())
	assert.Equal(t, []Row{{"id": "1", "rating": 4.5, "votes": int64(12), "demo_url": nil, "active": true}}, res.Items())

	require.Len(t, fake.calls, 1)
	in := fake.calls[0]
	assert.True(t, in.IncludeResultMetadata)
	assert.Equal(t, "portal", aws.ToString(in.Database))
	require.Len(t, in.Parameters, 2)
	assert.Equal(t, "p1", aws.ToString(in.Parameters[0].Name))
	assert.Equal(t, &types.FieldMemberStringValue{Value: "1"}, in.Parameters[0].Value)
	assert.Equal(t, types.TypeHintTimestamp, in.Parameters[1].TypeHint)
	assert.Equal(t, &types.FieldMemberStringValue{Value: "2024-01-15 00:00:00.000"}, in.Parameters[1].Value)
}

func TestRDSDataNoRecordsIsEmpty(t *testing.T) {
	exec := NewRDSDataExecutor(&fakeRDS{out: &rdsdata.ExecuteStatementOutput{}}, fullOpts, nil)
	assert.Equal(t, KindEmpty, exec.Execute(context.Background(), Statement{SQL: "SELECT 1"}).Kind())
}

func TestRDSDataClientErrorIsFailed(t *testing.T) {
	boom := errors.New("throttled")
	exec := NewRDSDataExecutor(&fakeRDS{err: boom}, fullOpts, nil)

	res := exec.Execute(context.Background(), Statement{SQL: "SELECT 1"})
	assert.Equal(t, KindFailed, res.Kind())
	assert.ErrorIs(t, res.Err(), boom)
}

func TestRDSDataUnsupportedParameter(t *testing.T) {
	fake := &fakeRDS{}
	exec := NewRDSDataExecutor(fake, fullOpts, nil)

	res := exec.Execute(context.Background(), Statement{SQL: "SELECT :p1", Args: []any{struct{}{}}})
	assert.Equal(t, KindFailed, res.Kind())
	assert.Empty(t, fake.calls)
}

func TestProbe(t *testing.T) {
	ctx := context.Background()
	assert.ErrorIs(t, Probe(ctx, Unavailable{}), ErrStoreUnavailable)

	ok := NewRDSDataExecutor(&fakeRDS{out: &rdsdata.ExecuteStatementOutput{}}, fullOpts, nil)
	assert.NoError(t, Probe(ctx, ok))

	boom := errors.New("down")
	bad := NewRDSDataExecutor(&fakeRDS{err: boom}, fullOpts, nil)
	assert.ErrorIs(t, Probe(ctx, bad), boom)
}
