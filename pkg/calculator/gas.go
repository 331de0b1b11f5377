package calculator

import (
	"fmt"

	"github.com/iwvelando/sip-planner/pkg/constants"
	"github.com/iwvelando/sip-planner/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Operation names a chain operation that costs gas.
type Operation string

const (
	OperationCreatePlan  Operation = "createPlan"
	OperationExecuteSIP  Operation = "executeSIP"
	OperationFinalizeSIP Operation = "finalizeSIP"
)

var (
	gasEstimates = map[Operation]decimal.Decimal{
		OperationCreatePlan:  mathutil.MustDecimal(constants.GasFeeCreatePlan),
		OperationExecuteSIP:  mathutil.MustDecimal(constants.GasFeeExecuteSIP),
		OperationFinalizeSIP: mathutil.MustDecimal(constants.GasFeeFinalizeSIP),
	}
	defaultGasFee = mathutil.MustDecimal(constants.DefaultGasFee)
)

// EstimateGasFee looks up the fixed fee estimate for op. Unknown operations
// get the default fee and a warning.
func EstimateGasFee(logger *zap.Logger, op Operation) decimal.Decimal {
	fee, known := LookupGasFee(op)
	if !known {
		if logger == nil {
			logger = zap.NewNop()
		}
		logger.Warn(fmt.Sprintf("no gas estimate for operation %q, using default", op),
			zap.String("op", "calculator.EstimateGasFee"),
			zap.String("fee", fee.String()),
		)
	}
	return fee
}

// LookupGasFee is EstimateGasFee without logging; known is false when the
// default fee was used.
func LookupGasFee(op Operation) (fee decimal.Decimal, known bool) {
	if fee, ok := gasEstimates[op]; ok {
		return fee, true
	}
	return defaultGasFee, false
}
