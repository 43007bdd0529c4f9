package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"cpusched/domain"

	fql "github.com/ganigeorgiev/fexpr"
	"go.uber.org/zap"
)

/*
example of combined filters
algorithm="rr" && quantum>=2
(algorithm="sjf" || algorithm="priority") && average_waiting_time<3
*/

var sqlSigns = map[fql.SignOp]string{
	fql.SignEq:  "=",
	fql.SignNeq: "!=",
	fql.SignLt:  "<",
	fql.SignLte: "<=",
	fql.SignGt:  ">",
	fql.SignGte: ">=",
}

// ParseRunFilter translates an fql filter into a postgres condition with named arguments
func ParseRunFilter(filter string, logger *zap.Logger) (string, map[string]any, error) {
	arguments := make(map[string]any)
	if strings.TrimSpace(filter) == "" {
		return "", arguments, nil
	}

	groups, err := fql.Parse(filter)
	if err != nil {
		logger.Error("error in parsing filter", zap.String("filter", filter), zap.Error(err))
		return "", nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	condition, err := buildGroups(groups, arguments)
	if err != nil {
		logger.Error("invalid fql value", zap.String("filter", filter), zap.Error(err))
		return "", nil, err
	}
	logger.Debug("parsed run filter", zap.String("condition", condition))
	return condition, arguments, nil
}

func buildGroups(groups []fql.ExprGroup, arguments map[string]any) (string, error) {
	var sb strings.Builder
	for i, group := range groups {
		if i > 0 {
			if group.Join == fql.JoinOr {
				sb.WriteString(" OR ")
			} else {
				sb.WriteString(" AND ")
			}
		}

		var condition string
		var err error
		switch item := group.Item.(type) {
		case fql.Expr:
			condition, err = buildExpr(item, arguments)
		case fql.ExprGroup:
			condition, err = buildGroups([]fql.ExprGroup{item}, arguments)
			condition = "(" + condition + ")"
		case []fql.ExprGroup:
			condition, err = buildGroups(item, arguments)
			condition = "(" + condition + ")"
		default:
			err = fmt.Errorf("%w: unsupported filter item %T", domain.ErrInvalidInput, group.Item)
		}
		if err != nil {
			return "", err
		}
		sb.WriteString(condition)
	}
	return sb.String(), nil
}

func buildExpr(expr fql.Expr, arguments map[string]any) (string, error) {
	if expr.Left.Type != fql.TokenIdentifier {
		return "", fmt.Errorf("%w: expected field name, got %q", domain.ErrInvalidInput, expr.Left.Literal)
	}
	column, ok := RunFilterFields[expr.Left.Literal]
	if !ok {
		return "", fmt.Errorf("%w: unknown filter field %q", domain.ErrInvalidInput, expr.Left.Literal)
	}
	sign, ok := sqlSigns[expr.Op]
	if !ok {
		return "", fmt.Errorf("%w: unsupported operator %q", domain.ErrInvalidInput, expr.Op)
	}
	if expr.Right.Type != fql.TokenText && expr.Right.Type != fql.TokenNumber {
		return "", fmt.Errorf("%w: expected value for %q", domain.ErrInvalidInput, expr.Left.Literal)
	}

	paramID := column + strconv.Itoa(len(arguments))
	if column == "algorithm" {
		if sign != "=" && sign != "!=" {
			return "", fmt.Errorf("%w: algorithm only supports = and !=", domain.ErrInvalidInput)
		}
		arguments[paramID] = strings.ToLower(expr.Right.Literal)
	} else {
		value, err := strconv.ParseFloat(expr.Right.Literal, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, expr.Right.Literal)
		}
		arguments[paramID] = value
	}
	return column + " " + sign + " @" + paramID, nil
}
