package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentC2BConfirmations fires the same provider confirmation many
// times in parallel. The transaction store keys rows by the provider receipt,
// so every replica must collapse into a single SUCCESS transaction no matter
// how the requests interleave.
func TestConcurrentC2BConfirmations(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, token := app.onboard(t, "Concurrency Shop", "600111")

	confirmation := `{
		"TransactionType": "Pay Bill",
		"TransID": "SHARED-RECEIPT-1",
		"TransTime": "20260828123456",
		"TransAmount": "100.00",
		"BusinessShortCode": "600111",
		"BillRefNumber": "INV-1",
		"MSISDN": "254712345678",
		"FirstName": "John"
	}`

	concurrency := 50
	var wg sync.WaitGroup
	var acked atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(app.server.URL+"/callbacks/c2b/confirmation", "application/json",
				bytes.NewBufferString(confirmation))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)
			if resp.StatusCode == http.StatusOK {
				acked.Add(1)
			}
		}()
	}
	wg.Wait()

	// Every delivery is acknowledged; exactly one transaction exists.
	assert.Equal(t, int64(concurrency), acked.Load())

	resp, decoded := app.getJSON(t, "/api/v1/transactions?operation=c2b", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

// TestConcurrentCharges verifies independent charges do not interfere: N
// parallel initiations yield N distinct PENDING transactions.
func TestConcurrentCharges(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, token := app.onboard(t, "Concurrency Shop", "174379")

	concurrency := 20
	var wg sync.WaitGroup
	var accepted atomic.Int64
	providerIDs := sync.Map{}

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := fmt.Sprintf(`{"phone_number":"0712345678","amount":%d,"account_ref":"INV-%d"}`, 100+idx, idx)
			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/charges", bytes.NewBufferString(body))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusAccepted {
				return
			}
			var decoded map[string]interface{}
			if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
				return
			}
			data := decoded["data"].(map[string]interface{})
			providerIDs.Store(data["provider_tx_id"].(string), struct{}{})
			accepted.Add(1)
		}(i)
	}
	wg.Wait()

	require.Equal(t, int64(concurrency), accepted.Load())

	distinct := 0
	providerIDs.Range(func(_, _ any) bool {
		distinct++
		return true
	})
	assert.Equal(t, concurrency, distinct)

	resp, decoded := app.getJSON(t, fmt.Sprintf("/api/v1/transactions?page_size=%d", concurrency), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, float64(concurrency), data["total"])
}
