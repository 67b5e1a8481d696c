// Package crypto holds the static table of accepted crypto assets and
// their receiving addresses. The table is reference data: it is exposed
// read-only to the UI and resolved during checkout composition.
package crypto

// Asset describes one accepted crypto asset. Address must reach the UI
// verbatim so it stays copyable character for character.
type Asset struct {
	Name          string
	Symbol        string
	Address       string
	Network       string
	Confirmations int
	EstimatedTime string
}

var assets = []Asset{
	{
		Name:          "Ethereum",
		Symbol:        "ETH",
		Address:       "0x743cbc89b69e2338b820672908585335118ae0ca",
		Network:       "ERC20",
		Confirmations: 12,
		EstimatedTime: "15 minutos",
	},
	{
		Name:          "USDT (TRC20)",
		Symbol:        "USDT",
		Address:       "TELfDE15DfT1dsfVUtQbC3aXLVtKmyKFq1",
		Network:       "TRON",
		Confirmations: 1,
		EstimatedTime: "5 minutos",
	},
	{
		Name:          "USDT (ERC20)",
		Symbol:        "USDT",
		Address:       "0x759180520dcf92abaffc7669490adb7dec2d5fd5",
		Network:       "ERC20",
		Confirmations: 12,
		EstimatedTime: "15 minutos",
	},
	{
		Name:          "Bitcoin",
		Symbol:        "BTC",
		Address:       "3KHcFHk9vCyhyMqSV1p3qaNDzRar87rbTP",
		Network:       "Bitcoin",
		Confirmations: 3,
		EstimatedTime: "30 minutos",
	},
	{
		Name:          "Litecoin",
		Symbol:        "LTC",
		Address:       "MGcHt8f99vEABDA7T3zj3fGXm6BpXPoVmB",
		Network:       "Litecoin",
		Confirmations: 6,
		EstimatedTime: "15 minutos",
	},
}

// All returns a copy of the asset table in display order.
func All() []Asset {
	out := make([]Asset, len(assets))
	copy(out, assets)
	return out
}

// ByName looks up an asset by its display name.
func ByName(name string) (Asset, bool) {
	for _, a := range assets {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}
