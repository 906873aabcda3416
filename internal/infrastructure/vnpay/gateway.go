// Package vnpay builds signed redirect URLs for the VNPay gateway and
// authenticates its return callbacks. Everything here is deterministic; the
// buyer's browser performs the actual redirect.
package vnpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apporder "github.com/floramart/floramart/internal/application/order"
	apppayment "github.com/floramart/floramart/internal/application/payment"
)

const (
	version   = "2.1.0"
	command   = "pay"
	currency  = "VND"
	locale    = "vn"
	orderType = "other"

	dateLayout = "20060102150405"

	fieldSecureHash     = "vnp_SecureHash"
	fieldSecureHashType = "vnp_SecureHashType"
	fieldTxnRef         = "vnp_TxnRef"
	fieldResponseCode   = "vnp_ResponseCode"
	fieldTxnStatus      = "vnp_TransactionStatus"
	fieldTransactionNo  = "vnp_TransactionNo"
	fieldBankCode       = "vnp_BankCode"

	// Both result codes must read "00" before a callback counts as success.
	codeSuccess = "00"
)

type Config struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
}

type Gateway struct {
	cfg Config
	now func() time.Time
}

func NewGateway(cfg Config) *Gateway {
	return &Gateway{
		cfg: cfg,
		now: func() time.Time { return time.Now() },
	}
}

// BuildPaymentURL assembles the canonical sorted parameter set, signs it with
// HMAC-SHA512 and returns the full redirect URL. The amount rides in minor
// units (x100) as the gateway requires.
func (g *Gateway) BuildPaymentURL(_ context.Context, req apporder.PaymentURLRequest) (string, error) {
	params := url.Values{}
	params.Set("vnp_Version", version)
	params.Set("vnp_Command", command)
	params.Set("vnp_TmnCode", g.cfg.TmnCode)
	params.Set("vnp_Amount", strconv.FormatInt(req.Amount.Mul(decimal.NewFromInt(100)).IntPart(), 10))
	params.Set("vnp_CreateDate", g.now().Format(dateLayout))
	params.Set("vnp_CurrCode", currency)
	params.Set("vnp_IpAddr", req.ClientIP)
	params.Set("vnp_Locale", locale)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", orderType)
	params.Set("vnp_ReturnUrl", g.cfg.ReturnURL)
	params.Set(fieldTxnRef, req.OrderID)

	// url.Values.Encode sorts keys lexicographically and URL-encodes each
	// pair, which is exactly the gateway's signing payload.
	signData := params.Encode()
	hash := g.sign(signData)

	return g.cfg.BaseURL + "?" + signData + "&" + fieldSecureHash + "=" + hash, nil
}

// ParseCallback re-derives the signature over the vnp_* fields of the return
// request and, only when it matches, decodes the result codes.
func (g *Gateway) ParseCallback(params url.Values) (*apppayment.Callback, error) {
	received := params.Get(fieldSecureHash)
	if received == "" {
		return nil, apppayment.ErrInvalidSignature
	}

	signed := url.Values{}
	for key, values := range params {
		if !strings.HasPrefix(key, "vnp_") {
			continue
		}
		if key == fieldSecureHash || key == fieldSecureHashType {
			continue
		}
		for _, v := range values {
			signed.Add(key, v)
		}
	}

	expected := g.sign(signed.Encode())
	if !strings.EqualFold(expected, received) {
		return nil, apppayment.ErrInvalidSignature
	}

	responseCode := params.Get(fieldResponseCode)
	txnStatus := params.Get(fieldTxnStatus)

	return &apppayment.Callback{
		OrderID:           params.Get(fieldTxnRef),
		ResponseCode:      responseCode,
		TransactionStatus: txnStatus,
		TransactionNo:     params.Get(fieldTransactionNo),
		BankCode:          params.Get(fieldBankCode),
		Success:           responseCode == codeSuccess && txnStatus == codeSuccess,
	}, nil
}

func (g *Gateway) sign(payload string) string {
	mac := hmac.New(sha512.New, []byte(g.cfg.HashSecret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// WithClock overrides the create-date clock, primarily for tests.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	if now != nil {
		g.now = now
	}
	return g
}
