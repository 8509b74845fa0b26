package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata/types"
	"go.uber.org/zap"
)

// RDSDataAPI is the subset of the RDS Data API client the executor uses.
type RDSDataAPI interface {
	ExecuteStatement(ctx context.Context, params *rdsdata.ExecuteStatementInput, optFns ...func(*rdsdata.Options)) (*rdsdata.ExecuteStatementOutput, error)
}

type RDSDataOptions struct {
	ResourceARN string
	SecretARN   string
	Database    string
}

func (o RDSDataOptions) complete() bool {
	return o.ResourceARN != "" && o.SecretARN != "" && o.Database != ""
}

// RDSDataExecutor runs statements through the Aurora Data API.
type RDSDataExecutor struct {
	client    RDSDataAPI
	opt       RDSDataOptions
	available bool
	log       *zap.Logger
}

func NewRDSDataExecutor(client RDSDataAPI, opt RDSDataOptions, log *zap.Logger) *RDSDataExecutor {
	if log == nil {
		log = zap.NewNop()
	}
	return &RDSDataExecutor{
		client:    client,
		opt:       opt,
		available: client != nil && opt.complete(),
		log:       log.Named("rdsdata"),
	}
}

func (e *RDSDataExecutor) Available() bool { return e.available }

func (e *RDSDataExecutor) Placeholder() sq.PlaceholderFormat { return Named }

func (e *RDSDataExecutor) Execute(ctx context.Context, stmt Statement) Result[Row] {
	if !e.available {
		return Failed[Row](ErrStoreUnavailable)
	}

	params, err := rdsParameters(stmt.Args)
	if err != nil {
		e.log.Warn("statement rejected", zap.String("sql", stmt.SQL), zap.Error(err))
		return Failed[Row](err)
	}

	out, err := e.client.ExecuteStatement(ctx, &rdsdata.ExecuteStatementInput{
		ResourceArn:           aws.String(e.opt.ResourceARN),
		SecretArn:             aws.String(e.opt.SecretARN),
		Database:              aws.String(e.opt.Database),
		Sql:                   aws.String(stmt.SQL),
		Parameters:            params,
		IncludeResultMetadata: true,
	})
	if err != nil {
		e.log.Warn("execute statement failed", zap.String("sql", stmt.SQL), zap.Error(err))
		return Failed[Row](fmt.Errorf("rdsdata execute: %w", err))
	}
	if out == nil || len(out.Records) == 0 {
		return Empty[Row]()
	}

	rows := make([]Row, 0, len(out.Records))
	for _, rec := range out.Records {
		row := make(Row, len(rec))
		for i, field := range rec {
			row[columnName(out.ColumnMetadata, i)] = fieldValue(field)
		}
		rows = append(rows, row)
	}
	return Ok(rows)
}

func columnName(meta []types.ColumnMetadata, i int) string {
	if i < len(meta) {
		if meta[i].Label != nil && *meta[i].Label != "" {
			return *meta[i].Label
		}
		if meta[i].Name != nil {
			return *meta[i].Name
		}
	}
	return fmt.Sprintf("column%d", i+1)
}

func fieldValue(f types.Field) any {
	switch v := f.(type) {
	case *types.FieldMemberStringValue:
		return v.Value
	case *types.FieldMemberLongValue:
		return v.Value
	case *types.FieldMemberDoubleValue:
		return v.Value
	case *types.FieldMemberBooleanValue:
		return v.Value
	case *types.FieldMemberBlobValue:
		return v.Value
	case *types.FieldMemberArrayValue:
		return arrayValue(v.Value)
	case *types.FieldMemberIsNull:
		return nil
	}
	return nil
}

func arrayValue(a types.ArrayValue) any {
	switch v := a.(type) {
	case *types.ArrayValueMemberStringValues:
		return v.Value
	case *types.ArrayValueMemberLongValues:
		return v.Value
	case *types.ArrayValueMemberDoubleValues:
		return v.Value
	case *types.ArrayValueMemberBooleanValues:
		return v.Value
	}
	return nil
}

// rdsParameters names positional args p1..pN to match the Named placeholder format.
func rdsParameters(args []any) ([]types.SqlParameter, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make([]types.SqlParameter, 0, len(args))
	for i, arg := range args {
		p := types.SqlParameter{Name: aws.String(paramName(i + 1))}
		switch v := arg.(type) {
		case nil:
			p.Value = &types.FieldMemberIsNull{Value: true}
		case string:
			p.Value = &types.FieldMemberStringValue{Value: v}
		case int:
			p.Value = &types.FieldMemberLongValue{Value: int64(v)}
		case int32:
			p.Value = &types.FieldMemberLongValue{Value: int64(v)}
		case int64:
			p.Value = &types.FieldMemberLongValue{Value: v}
		case float32:
			p.Value = &types.FieldMemberDoubleValue{Value: float64(v)}
		case float64:
			p.Value = &types.FieldMemberDoubleValue{Value: v}
		case bool:
			p.Value = &types.FieldMemberBooleanValue{Value: v}
		case []byte:
			p.Value = &types.FieldMemberBlobValue{Value: v}
		case time.Time:
			p.Value = &types.FieldMemberStringValue{Value: v.UTC().Format("2006-01-02 15:04:05.000")}
			p.TypeHint = types.TypeHintTimestamp
		case *time.Time:
			if v == nil {
				p.Value = &types.FieldMemberIsNull{Value: true}
				break
			}
			p.Value = &types.FieldMemberStringValue{Value: v.UTC().Format("2006-01-02 15:04:05.000")}
			p.TypeHint = types.TypeHintTimestamp
		case fmt.Stringer:
			p.Value = &types.FieldMemberStringValue{Value: v.String()}
		default:
			return nil, fmt.Errorf("unsupported parameter type %T at position %d", arg, i+1)
		}
		params = append(params, p)
	}
	return params, nil
}
