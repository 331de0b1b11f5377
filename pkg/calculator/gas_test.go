package calculator

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEstimateGasFee(t *testing.T) {
	tests := []struct {
		op       Operation
		expected string
	}{
		{OperationCreatePlan, "0.002"},
		{OperationExecuteSIP, "0.001"},
		{OperationFinalizeSIP, "0.0015"},
		{"unknownOp", "0.001"},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			if got := EstimateGasFee(zap.NewNop(), tt.op); !got.Equal(amount(tt.expected)) {
				t.Errorf("EstimateGasFee(%s) = %s, expected %s", tt.op, got, tt.expected)
			}
		})
	}
}

func TestEstimateGasFeeLogsFallback(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	EstimateGasFee(logger, OperationCreatePlan)
	if logs.Len() != 0 {
		t.Fatalf("expected no warning for known operation, got %d", logs.Len())
	}

	EstimateGasFee(logger, "unknownOp")
	if logs.Len() != 1 {
		t.Fatalf("expected one warning for unknown operation, got %d", logs.Len())
	}
	if _, known := LookupGasFee("unknownOp"); known {
		t.Error("LookupGasFee() reported unknown operation as known")
	}
}
