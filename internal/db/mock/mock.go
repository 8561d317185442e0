package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"luminadecor/internal/history"
	applog "luminadecor/internal/log"
	"luminadecor/models"
)

// DemoOwner is the profile email whose history is pre-populated.
const DemoOwner = "demo@luminadecor.app"

// demoPreview is a 1x1 PNG used as the stored room photo.
const demoPreview = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// New returns an in-memory sqlite database with the history schema and a
// demo profile's saved design.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:luminadecor-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.HistoryRecord{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database", "owner", DemoOwner)

	store, err := history.New(db, history.Options{})
	if err != nil {
		return err
	}
	// Re-opening the shared in-memory database must not duplicate the demo entry.
	if len(store.List(ctx, DemoOwner)) > 0 {
		return nil
	}

	_, err = store.Append(ctx, DemoOwner, models.NewHistoryItem{
		EventType:      "Birthday",
		Budget:         "Moderate (₹5,000 - ₹15,000)",
		ImagePreview:   demoPreview,
		AnalysisResult: demoResult(),
	})
	return err
}

func demoResult() models.AnalysisResult {
	return models.AnalysisResult{
		RoomAnalysis: models.RoomAnalysis{
			Layout:        "Rectangular living room with an open wall opposite the sofa.",
			Lighting:      "Warm daylight from a single west-facing window.",
			Colors:        "Beige walls with teak furniture.",
			OpenSpaces:    "Centre of the room and the wall behind the sofa.",
			Furniture:     "Three-seater sofa, coffee table, TV console.",
			SuitableAreas: []string{"Wall behind the sofa", "Corner by the window"},
			SafetyTips:    []string{"Keep candles away from curtains."},
		},
		Themes: []models.DecorTheme{
			{
				ID:                    "pastel-dream",
				Name:                  "Pastel Dream",
				Mood:                  "Soft and playful",
				ColorPalette:          []string{"#F8C8DC", "#C1E1C1", "#FFFFFF"},
				VisualDescription:     "Pastel balloon arch framing the sofa wall with fairy lights.",
				PlacementInstructions: []string{"Mount the arch on the sofa wall.", "Hang fairy lights along the window."},
				BackdropDesign:        "Pastel sequin panel",
				BalloonArrangement:    "Organic arch in three pastel tones",
				LightingSetup:         "Warm fairy lights",
				SpecialElements:       []string{"Name banner"},
				Items: []models.DecorationItem{
					{Name: "Balloon kit", Source: "Local party store", ApproxPriceINR: 1200, Quantity: "1 kit"},
					{Name: "Fairy lights", Source: "Online", ApproxPriceINR: 450, Quantity: "2 strings"},
				},
				TotalCost:      1650,
				BudgetCategory: models.BudgetFriendly,
			},
			{
				ID:                    "champagne-gold",
				Name:                  "Champagne Gold",
				Mood:                  "Elegant",
				ColorPalette:          []string{"#D4AF37", "#FFFDD0"},
				VisualDescription:     "Gold drapes with a cream balloon cluster and a dessert table.",
				PlacementInstructions: []string{"Drape the sofa wall.", "Set the dessert table by the window."},
				BackdropDesign:        "Gold satin drape",
				BalloonArrangement:    "Cream and gold clusters",
				LightingSetup:         "Warm spotlights",
				SpecialElements:       []string{"Dessert table"},
				Items: []models.DecorationItem{
					{Name: "Satin drape", Source: "Fabric market", ApproxPriceINR: 2500, Quantity: "3 m"},
					{Name: "Balloon clusters", Source: "Local party store", ApproxPriceINR: 1800, Quantity: "4"},
					{Name: "Spotlights", Source: "Online", ApproxPriceINR: 2200, Quantity: "2"},
				},
				TotalCost:      6500,
				BudgetCategory: models.BudgetModerate,
			},
		},
		RecommendedThemeID:   "champagne-gold",
		RecommendationReason: "The warm gold tones match the teak furniture.",
	}
}
