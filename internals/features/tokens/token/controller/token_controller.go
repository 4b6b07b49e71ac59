package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tokenDTO "eduhub_backend/internals/features/tokens/token/dto"
	tokenService "eduhub_backend/internals/features/tokens/token/service"
	helper "eduhub_backend/internals/helpers"
)

type TokenController struct {
	Service *tokenService.TokenService
}

func NewTokenController(db *gorm.DB) *TokenController {
	return &TokenController{Service: tokenService.NewTokenService(db)}
}

// 💰 MyTokens: saldo + explore score requester.
func (ctrl *TokenController) MyTokens(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := ctrl.Service.Balance(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Token balance fetched", fiber.Map{
		"edutokens":     user.EduTokens,
		"explore_score": user.ExploreScore,
		"name":          user.UserName,
	})
}

// 🧾 History: entry ledger requester, terbaru dulu.
func (ctrl *TokenController) History(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 50, 100)
	logs, total, err := ctrl.Service.History(userID, paging.Offset, paging.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Token history fetched", logs,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🏆 Leaderboard: top 20 user berdasarkan saldo, user banned dikecualikan.
func (ctrl *TokenController) Leaderboard(c *fiber.Ctx) error {
	users, err := ctrl.Service.Leaderboard(20)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	entries := make([]tokenDTO.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, tokenDTO.LeaderboardEntry{
			Rank:         i + 1,
			Name:         u.UserName,
			College:      u.College,
			EduTokens:    u.EduTokens,
			ExploreScore: u.ExploreScore,
		})
	}
	return helper.JsonOK(c, "Leaderboard fetched", entries)
}
