package amount

// Amount is a monetary value in satoshis.
type Amount int64

const (
	// COIN is the number of satoshis in one coin.
	COIN Amount = 100000000

	// MaxMoney is the total money supply cap. No single output, output sum,
	// input sum or fee total may exceed it.
	MaxMoney = 21000000 * COIN
)

// MoneyRange reports whether value lies in [0, MaxMoney].
func MoneyRange(value Amount) bool {
	return value >= 0 && value <= MaxMoney
}
