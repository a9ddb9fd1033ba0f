package sampledata

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"doseview/domain/selection"
	"doseview/domain/table"
)

// Generator produces the demo datasets. A fixed seed gives reproducible
// data across refreshes with the same configuration.
type Generator struct {
	rng *rand.Rand
	src rand.Source
}

// NewGenerator creates a generator seeded for reproducible results
func NewGenerator(seed int64) *Generator {
	src := rand.NewPCG(uint64(seed), uint64(seed)+1)
	return &Generator{rng: rand.New(src), src: src}
}

// Datasets generates every sample dataset and registers it in a fresh
// store
func (g *Generator) Datasets() *table.Store {
	store := table.NewStore()
	store.Register(g.Sales())
	store.Register(g.StockPrices())
	store.Register(g.Weather())
	store.Register(g.Screening())
	return store
}

var salesSchema = table.MustSchema(
	table.Column{Name: "date", Kind: table.KindDatetime},
	table.Column{Name: "region", Kind: table.KindCategorical},
	table.Column{Name: "product", Kind: table.KindCategorical},
	table.Column{Name: "sales_amount", Kind: table.KindNumeric},
	table.Column{Name: "units_sold", Kind: table.KindNumeric},
	table.Column{Name: "profit_margin", Kind: table.KindNumeric},
)

// Sales generates 200 rows of regional product sales
func (g *Generator) Sales() *table.Dataset {
	regions := []string{"North", "South", "East", "West", "Central"}
	products := []string{"Product A", "Product B", "Product C", "Product D", "Product E"}

	amount := distuv.Normal{Mu: 1000, Sigma: 300, Src: g.src}
	units := distuv.Poisson{Lambda: 50, Src: g.src}
	margin := distuv.Uniform{Min: 0.1, Max: 0.4, Src: g.src}

	now := time.Now()
	rows := make([]table.Row, 0, 200)
	for i := 0; i < 200; i++ {
		rows = append(rows, table.Row{
			now.AddDate(0, 0, -g.rng.IntN(366)),
			regions[g.rng.IntN(len(regions))],
			products[g.rng.IntN(len(products))],
			math.Abs(amount.Rand()),
			units.Rand(),
			margin.Rand(),
		})
	}

	t, _ := table.New(salesSchema, rows)
	return &table.Dataset{
		Name:  "sales_data",
		Title: "Sales Data",
		Description: "Synthetic **regional sales** records: one row per sale with " +
			"region, product, amount, units and profit margin.",
		Table: t,
	}
}

var stockSchema = table.MustSchema(
	table.Column{Name: "date", Kind: table.KindDatetime},
	table.Column{Name: "symbol", Kind: table.KindCategorical},
	table.Column{Name: "price", Kind: table.KindNumeric},
	table.Column{Name: "volume", Kind: table.KindNumeric},
	table.Column{Name: "market_cap", Kind: table.KindNumeric},
)

// StockPrices generates a year of daily prices for five symbols via a
// geometric random walk
func (g *Generator) StockPrices() *table.Dataset {
	symbols := []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA"}

	basePrice := distuv.Uniform{Min: 100, Max: 500, Src: g.src}
	dailyReturn := distuv.Normal{Mu: 0.001, Sigma: 0.02, Src: g.src}

	baseDate := time.Now().AddDate(0, 0, -365)
	rows := make([]table.Row, 0, len(symbols)*252)
	for _, symbol := range symbols {
		price := basePrice.Rand()
		for day := 0; day < 252; day++ {
			price = price * (1 + dailyReturn.Rand())
			rows = append(rows, table.Row{
				baseDate.AddDate(0, 0, day),
				symbol,
				math.Abs(price),
				float64(1_000_000 + g.rng.IntN(9_000_000)),
				math.Abs(price) * float64(1_000_000+g.rng.IntN(4_000_000)),
			})
		}
	}

	t, _ := table.New(stockSchema, rows)
	return &table.Dataset{
		Name:  "stock_prices",
		Title: "Stock Prices",
		Description: "Simulated **daily closing prices** for five tickers over one " +
			"trading year (random walk with drift).",
		Table: t,
	}
}

var weatherSchema = table.MustSchema(
	table.Column{Name: "date", Kind: table.KindDatetime},
	table.Column{Name: "city", Kind: table.KindCategorical},
	table.Column{Name: "temperature", Kind: table.KindNumeric},
	table.Column{Name: "humidity", Kind: table.KindNumeric},
	table.Column{Name: "precipitation", Kind: table.KindNumeric},
	table.Column{Name: "wind_speed", Kind: table.KindNumeric},
)

// Weather generates a year of daily weather for five cities with a
// seasonal temperature curve
func (g *Generator) Weather() *table.Dataset {
	cities := []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"}

	baseTemp := distuv.Uniform{Min: 10, Max: 25, Src: g.src}
	tempNoise := distuv.Normal{Mu: 0, Sigma: 5, Src: g.src}
	humidity := distuv.Uniform{Min: 30, Max: 90, Src: g.src}
	precipitation := distuv.Exponential{Rate: 0.5, Src: g.src}
	windSpeed := distuv.Gamma{Alpha: 2, Beta: 0.5, Src: g.src}

	now := time.Now()
	rows := make([]table.Row, 0, len(cities)*365)
	for _, city := range cities {
		base := baseTemp.Rand()
		for day := 0; day < 365; day++ {
			date := now.AddDate(0, 0, -day)
			seasonal := base + 15*math.Sin(2*math.Pi*float64(date.YearDay())/365)
			rows = append(rows, table.Row{
				date,
				city,
				seasonal + tempNoise.Rand(),
				humidity.Rand(),
				math.Abs(precipitation.Rand()),
				math.Abs(windSpeed.Rand()),
			})
		}
	}

	t, _ := table.New(weatherSchema, rows)
	return &table.Dataset{
		Name:  "weather_data",
		Title: "Weather Data",
		Description: "Synthetic **daily weather** for five cities: seasonal " +
			"temperature plus humidity, precipitation and wind speed.",
		Table: t,
	}
}

// ScreeningSchema is the compound-screening table layout
var ScreeningSchema = table.MustSchema(
	table.Column{Name: selection.ColReadOut, Kind: table.KindCategorical},
	table.Column{Name: selection.ColCompound, Kind: table.KindCategorical},
	table.Column{Name: selection.ColMeasurement, Kind: table.KindCategorical},
	table.Column{Name: selection.ColScreen, Kind: table.KindNumeric},
	table.Column{Name: selection.ColConcentration, Kind: table.KindNumeric},
	table.Column{Name: selection.ColAverage, Kind: table.KindNumeric},
	table.Column{Name: selection.ColSEM, Kind: table.KindNumeric},
	table.Column{Name: selection.ColSTDEV, Kind: table.KindNumeric},
)

// Screening generates demo concentration-response data: a sigmoid per
// (compound, measurement) with per-screen noise, so both the faceted and
// the pooled chart modes have something to show
func (g *Generator) Screening() *table.Dataset {
	compounds := []string{"CMP-001", "CMP-002", "CMP-003", "CMP-004", "CMP-005"}
	concentrations := []float64{0.001, 0.01, 0.1, 1, 10}
	screens := []float64{1, 2, 3}

	// Fixed iteration order keeps generation reproducible for one seed
	readOuts := []selection.ReadOut{selection.ReadOutCalcium, selection.ReadOutVoltage}

	noise := distuv.Normal{Mu: 0, Sigma: 0.5, Src: g.src}
	spread := distuv.Uniform{Min: 0.1, Max: 0.8, Src: g.src}

	var rows []table.Row
	for _, readOut := range readOuts {
		measurements, _ := selection.AllowedMeasurements(readOut)
		for _, measurement := range measurements {
			for ci, compound := range compounds {
				// Potency shifts per compound so curves separate visually
				ec50 := concentrations[ci%len(concentrations)]
				for _, screen := range screens {
					for _, concentration := range concentrations {
						response := 10 / (1 + ec50/concentration)
						sem := spread.Rand()
						rows = append(rows, table.Row{
							string(readOut),
							compound,
							measurement,
							screen,
							concentration,
							response + noise.Rand(),
							sem,
							sem * math.Sqrt(3),
						})
					}
				}
			}
		}
	}

	t, _ := table.New(ScreeningSchema, rows)
	return &table.Dataset{
		Name:  "screening",
		Title: "Compound Screening",
		Description: "Demo **concentration-response** data: five compounds across " +
			"calcium and voltage read-outs, three screens each. Load a CSV via " +
			"`DATA_FILE` to replace it.",
		Table: t,
	}
}
