package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shailyapp/shaily/models"
	"github.com/shailyapp/shaily/utils"
)

// AssistantController fronts the generative-language API for the chat
// assistant and the personalized content feeds. Prompts are plain string
// templates; the model's reply is forwarded after a fail-closed JSON parse
// where structure is expected. No retries or ranking happen here.
type AssistantController struct {
	db     *gorm.DB
	gemini *utils.GeminiClient
	now    func() time.Time
}

// NewAssistantController creates an AssistantController.
func NewAssistantController(db *gorm.DB, gemini *utils.GeminiClient) *AssistantController {
	return &AssistantController{db: db, gemini: gemini, now: time.Now}
}

// Chat answers a free-form question with the user's profile as context.
func (a *AssistantController) Chat(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40080, "message is required")
		return
	}

	var user models.User
	if err := a.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
		return
	}

	prompt := chatPrompt(&user, req.Message)
	reply, err := a.gemini.GenerateText(ctx.Request.Context(), prompt)
	if err != nil {
		a.assistantError(ctx, 50080, err)
		return
	}

	utils.Success(ctx, gin.H{"reply": reply})
}

// feedCard is one entry of the daily discovery feed.
type feedCard struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Icon    string `json:"icon"`
}

// DiscoveryFeed generates five personalized content cards.
func (a *AssistantController) DiscoveryFeed(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	var user models.User
	if err := a.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
		return
	}

	var cards []feedCard
	if err := a.gemini.GenerateJSON(ctx.Request.Context(), discoveryFeedPrompt(&user), &cards); err != nil {
		a.assistantError(ctx, 50081, err)
		return
	}

	utils.Success(ctx, cards)
}

// potionIngredient is one metaphorical ingredient of the potion mixer.
type potionIngredient struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Icon             string `json:"icon"`
	ActualIngredient string `json:"actual_ingredient"`
}

// PotionMixer generates three playful ingredients from the profile and
// today's lifestyle log.
func (a *AssistantController) PotionMixer(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	var user models.User
	if err := a.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
		return
	}

	var todayLog *models.DailyLog
	var entry models.DailyLog
	if err := a.db.First(&entry, "user_id = ? AND log_date = ?", userID, dateString(a.now())).Error; err == nil {
		todayLog = &entry
	}

	var ingredients []potionIngredient
	if err := a.gemini.GenerateJSON(ctx.Request.Context(), potionMixerPrompt(&user, todayLog), &ingredients); err != nil {
		a.assistantError(ctx, 50082, err)
		return
	}

	utils.Success(ctx, ingredients)
}

// assistantError maps upstream failures: a missing key is a config problem
// (503), anything else from the model is a bad gateway.
func (a *AssistantController) assistantError(ctx *gin.Context, code int, err error) {
	if errors.Is(err, utils.ErrGeminiNotConfigured) {
		utils.Error(ctx, http.StatusServiceUnavailable, code, "assistant is not configured")
		return
	}
	utils.Sugar.Warnf("assistant upstream failure: %v", err)
	utils.Error(ctx, http.StatusBadGateway, code, "assistant is temporarily unavailable")
}

func chatPrompt(user *models.User, message string) string {
	var b strings.Builder
	b.WriteString("You are \"Shaily\", a friendly and knowledgeable AI skincare and haircare assistant.\n")
	b.WriteString("Answer the user's question helpfully and concisely. The answer must be in Persian (Farsi).\n\n")
	b.WriteString(profileBlock(user))
	b.WriteString("\nUser's question:\n")
	b.WriteString(message)
	return b.String()
}

func discoveryFeedPrompt(user *models.User) string {
	var b strings.Builder
	b.WriteString("You are \"Shaily\", a friendly and knowledgeable AI skincare and haircare assistant.\n")
	b.WriteString("Your task is to generate a personalized \"Daily Discovery Feed\" for a user.\n")
	b.WriteString("The feed should consist of 5 diverse and engaging content cards in JSON format.\n")
	b.WriteString("The content must be in Persian (Farsi).\n\n")
	b.WriteString(profileBlock(user))
	b.WriteString(`
Generate an array of 5 JSON objects, each representing a card. Each object must have these keys:
1. "type": (string) Choose one from: "IngredientSpotlight", "MythBuster", "LifestyleTip", "MicroChallenge", "SeasonalTip".
2. "title": (string) A short, catchy title in Persian.
3. "content": (string) The main text of the card, 1-2 sentences long, in Persian.
4. "icon": (string) A relevant emoji.

Make the content highly relevant to the user's profile.
Return ONLY the JSON array.`)
	return b.String()
}

func potionMixerPrompt(user *models.User, todayLog *models.DailyLog) string {
	logInfo := "The user did not log their lifestyle today."
	if todayLog != nil {
		logInfo = fmt.Sprintf("- Today's Sleep: %.1f hours\n- Today's Water Intake: %d glasses\n- Today's Stress Level: %d/5",
			todayLog.SleepHours, todayLog.WaterIntake, todayLog.StressLevel)
	}

	var b strings.Builder
	b.WriteString("You are \"Shaily\", a creative AI skincare assistant.\n")
	b.WriteString("Your task is to suggest 3 fun, metaphorical \"potion ingredients\" for a user based on their profile and their daily log.\n")
	b.WriteString("The content must be in Persian (Farsi).\n\n")
	b.WriteString(profileBlock(user))
	b.WriteString("\nHere is the user's log for today:\n")
	b.WriteString(logInfo)
	b.WriteString(`

Based on this data, generate an array of 3 JSON objects. Each object represents an ingredient and must have these keys:
1. "name": (string) A creative, fun name for the ingredient in Persian.
2. "description": (string) A short, magical description of what it does, linking it to a real skincare concept, in Persian.
3. "icon": (string) A single, relevant emoji.
4. "actual_ingredient": (string) The real-world skincare ingredient it represents, in Persian.

Make the ingredients relevant. If stress is high, suggest calming ingredients. If sleep is low, suggest revitalizing ones.
Return ONLY the JSON array.`)
	return b.String()
}

func profileBlock(user *models.User) string {
	return fmt.Sprintf(`Here is the user's profile:
- Gender: %s
- Age Range: %s
- Skin Type: %s
- Skin Concerns: %s
- Hair Type: %s
- Hair Concerns: %s
- Skin Analysis:
    - Comedones: %s
    - Red Pimples: %s
    - Fine Lines: %s
`,
		orUnspecified(user.Gender),
		orUnspecified(user.Age),
		orUnspecified(user.SkinType),
		joinOrNone(user.SkinConcerns),
		orUnspecified(user.HairType),
		joinOrNone(user.HairConcerns),
		orUnspecified(user.Comedones),
		orUnspecified(user.RedPimples),
		orUnspecified(user.FineLines),
	)
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
