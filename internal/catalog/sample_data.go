package catalog

import (
	"time"

	"github.com/SAP-F-2025/quizzone/internal/models"
)

// SampleQuizzes returns the built-in quiz set.
func SampleQuizzes() []models.Quiz {
	return []models.Quiz{
		{
			ID:                   "basic-financial-literacy",
			Title:                "Basic Financial Literacy",
			Category:             models.CategoryFinance,
			Difficulty:           models.DifficultyEasy,
			EstimatedTimeMinutes: 5,
			Description:          "Test your knowledge of fundamental financial concepts",
			Questions: []models.Question{
				{
					ID:   "bfl-compound-interest",
					Text: "What is compound interest?",
					Type: models.MultipleChoice,
					Options: []string{
						"Interest earned only on the principal amount",
						"Interest earned on both principal and previously earned interest",
						"A type of loan with fixed payments",
						"Interest that decreases over time",
					},
					CorrectAnswerIndex: 1,
					Explanation:        "Compound interest is interest calculated on the initial principal and also on the accumulated interest from previous periods.",
					Points:             10,
				},
				{
					ID:   "bfl-emergency-fund",
					Text: "An emergency fund should typically cover how many months of expenses?",
					Type: models.MultipleChoice,
					Options: []string{
						"1-2 months",
						"3-6 months",
						"12-24 months",
						"No emergency fund is needed",
					},
					CorrectAnswerIndex: 1,
					Explanation:        "Financial experts recommend having 3-6 months of living expenses saved in an emergency fund.",
					Points:             10,
				},
				{
					ID:                 "bfl-diversification",
					Text:               "Diversification helps reduce investment risk.",
					Type:               models.TrueFalse,
					Options:            []string{"True", "False"},
					CorrectAnswerIndex: 0,
					Explanation:        "Diversification spreads risk across different investments, reducing the impact of any single investment's poor performance.",
					Points:             10,
				},
			},
		},
		{
			ID:                   "investment-strategies",
			Title:                "Investment Strategies",
			Category:             models.CategoryFinance,
			Difficulty:           models.DifficultyMedium,
			EstimatedTimeMinutes: 7,
			Description:          "Explore different investment approaches and market concepts",
			Questions: []models.Question{
				{
					ID:   "is-dollar-cost-averaging",
					Text: "What is dollar-cost averaging?",
					Type: models.MultipleChoice,
					Options: []string{
						"Investing a lump sum all at once",
						"Investing fixed amounts regularly regardless of price",
						"Only buying stocks when prices are low",
						"Averaging the cost of different investments",
					},
					CorrectAnswerIndex: 1,
					Explanation:        "Dollar-cost averaging involves investing a fixed amount regularly, which can help reduce the impact of market volatility.",
					Points:             15,
				},
				{
					ID:                 "is-bull-market",
					Text:               "A bull market is characterized by rising prices.",
					Type:               models.TrueFalse,
					Options:            []string{"True", "False"},
					CorrectAnswerIndex: 0,
					Explanation:        "A bull market is a period of generally rising prices and investor optimism.",
					Points:             15,
				},
			},
		},
		{
			ID:                   "movie-trivia-challenge",
			Title:                "Movie Trivia Challenge",
			Category:             models.CategoryEntertainment,
			Difficulty:           models.DifficultyEasy,
			EstimatedTimeMinutes: 4,
			Description:          "Test your knowledge of movies and cinema",
			Questions: []models.Question{
				{
					ID:   "mt-best-picture-2020",
					Text: "Which movie won the Academy Award for Best Picture in 2020?",
					Type: models.MultipleChoice,
					Options: []string{
						"1917",
						"Joker",
						"Parasite",
						"Once Upon a Time in Hollywood",
					},
					CorrectAnswerIndex: 2,
					Explanation:        "Parasite made history as the first non-English language film to win Best Picture.",
					Points:             10,
				},
				{
					ID:                 "mt-titanic-release",
					Text:               "The movie 'Titanic' was released in 1997.",
					Type:               models.TrueFalse,
					Options:            []string{"True", "False"},
					CorrectAnswerIndex: 0,
					Explanation:        "Titanic was indeed released in 1997 and became one of the highest-grossing films of all time.",
					Points:             10,
				},
			},
		},
		{
			ID:                   "money-entertainment-mix",
			Title:                "Money & Entertainment Mix",
			Category:             models.CategoryMixed,
			Difficulty:           models.DifficultyMedium,
			EstimatedTimeMinutes: 6,
			Description:          "A blend of entertainment and financial knowledge",
			Questions: []models.Question{
				{
					ID:   "mix-wall-street-show",
					Text: "Which TV show features characters working on Wall Street?",
					Type: models.MultipleChoice,
					Options: []string{
						"Breaking Bad",
						"Suits",
						"Billions",
						"The Office",
					},
					CorrectAnswerIndex: 2,
					Explanation:        "Billions is a drama series that focuses on the world of high finance and hedge funds.",
					Points:             15,
				},
				{
					ID:   "mix-roi",
					Text: "What does ROI stand for in business?",
					Type: models.MultipleChoice,
					Options: []string{
						"Rate of Interest",
						"Return on Investment",
						"Risk of Investment",
						"Revenue over Income",
					},
					CorrectAnswerIndex: 1,
					Explanation:        "ROI stands for Return on Investment, a measure of investment efficiency.",
					Points:             15,
				},
			},
		},
		{
			ID:                   "financial-puzzles",
			Title:                "Financial Puzzles",
			Category:             models.CategoryPuzzle,
			Difficulty:           models.DifficultyHard,
			EstimatedTimeMinutes: 10,
			Description:          "Challenge yourself with financial calculations and logic puzzles",
			Questions: []models.Question{
				{
					ID:   "fp-compound-two-years",
					Text: "If you invest $1000 at 5% annual compound interest, how much will you have after 2 years?",
					Type: models.MultipleChoice,
					Options: []string{
						"$1100",
						"$1102.50",
						"$1050",
						"$1200",
					},
					CorrectAnswerIndex: 1,
					Explanation:        "Using the compound interest formula: $1000 × (1.05)² = $1102.50",
					Points:             20,
				},
				{
					ID:   "fp-groceries-gas",
					Text: "You have $100. You spend 25% on groceries, then 20% of what's left on gas. How much do you have remaining?",
					Type: models.MultipleChoice,
					Options: []string{
						"$55",
						"$60",
						"$65",
						"$70",
					},
					CorrectAnswerIndex: 1,
					Explanation:        "After groceries: $75. After gas (20% of $75 = $15): $75 - $15 = $60",
					Points:             20,
				},
			},
		},
	}
}

// SampleTips returns the built-in tips, dated today back to four days ago.
func SampleTips(now time.Time, loc *time.Location) []models.FinancialTip {
	today := models.StartOfDay(now, loc)
	daysAgo := func(n int) time.Time { return today.AddDate(0, 0, -n) }

	return []models.FinancialTip{
		{
			ID:                 "start-small-with-investing",
			Title:              "Start Small with Investing",
			Content:            "You don't need thousands of dollars to start investing. Many brokerages now offer fractional shares, allowing you to invest with as little as $1. The key is to start early and be consistent.",
			Category:           "Investing",
			Date:               daysAgo(0),
			ReadingTimeMinutes: 2,
		},
		{
			ID:                 "the-50-30-20-rule",
			Title:              "The 50/30/20 Rule",
			Content:            "A simple budgeting method: allocate 50% of your income to needs, 30% to wants, and 20% to savings and debt repayment. This provides a balanced approach to managing your money.",
			Category:           "Budgeting",
			Date:               daysAgo(1),
			ReadingTimeMinutes: 3,
		},
		{
			ID:                 "automate-your-savings",
			Title:              "Automate Your Savings",
			Content:            "Set up automatic transfers to your savings account right after payday. When you automate your savings, you're paying yourself first and building wealth without having to think about it.",
			Category:           "Saving",
			Date:               daysAgo(2),
			ReadingTimeMinutes: 2,
		},
		{
			ID:                 "understand-your-credit-score",
			Title:              "Understand Your Credit Score",
			Content:            "Your credit score affects loan rates, insurance premiums, and even job opportunities. Check your credit report regularly and pay bills on time to maintain a good score.",
			Category:           "Credit",
			Date:               daysAgo(3),
			ReadingTimeMinutes: 4,
		},
		{
			ID:                 "diversify-your-income",
			Title:              "Diversify Your Income",
			Content:            "Don't rely solely on your job for income. Consider developing multiple income streams through side hustles, investments, or passive income sources to increase financial security.",
			Category:           "Income",
			Date:               daysAgo(4),
			ReadingTimeMinutes: 3,
		},
	}
}
