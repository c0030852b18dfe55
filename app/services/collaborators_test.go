package services

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/logger"
)

func TestLogAuditSinkLog(t *testing.T) {
	var buf bytes.Buffer
	var sink AuditSink = &LogAuditSink{Logger: logger.NewWithWriter(&buf)}

	err := sink.Log("liquidation", "fraction", "fraction-1", "user-1", d("12.00"), "Fee 03/2025")
	require.NoError(t, err)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "liquidation", event["event"])
	assert.Equal(t, "fraction", event["entity_type"])
	assert.Equal(t, "fraction-1", event["entity_id"])
	assert.Equal(t, "12", event["amount"])
	assert.Equal(t, "audit event", event["message"])
}

func TestLogReceiptGenerator(t *testing.T) {
	var buf bytes.Buffer
	var receipts ReceiptGenerator = &LogReceiptGenerator{Logger: logger.NewWithWriter(&buf)}

	err := receipts.GenerateForFullyPaidFee("fee-1", "payment-1", "condo-1", "user-1")
	require.NoError(t, err)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "fee-1", event["fee_id"])
	assert.Equal(t, "payment-1", event["payment_id"])
}
