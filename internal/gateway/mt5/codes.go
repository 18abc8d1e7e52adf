package mt5

// Trade return codes the adapter and its tests name explicitly. All other
// codes pass through order results verbatim.
const (
	RetDone    = 10009
	RetNoMoney = 10019
)

// MT5 position type values as reported by the terminal. Type 0 is a buy.
const positionTypeSell = 1

// MT5 order type values used in trade requests.
const (
	orderTypeBuy  = 0
	orderTypeSell = 1
)

// MT5 trade action values used in trade requests.
const (
	tradeActionDeal = 1
	tradeActionSLTP = 6
)

// MT5 order lifetime and fill values.
const (
	orderTimeGTC    = 0
	orderFillingIOC = 1
)
