package inspector

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/annel0/combo-targeting/internal/combat"
	"github.com/annel0/combo-targeting/internal/scenario"
	"github.com/annel0/combo-targeting/internal/targeting"
	"github.com/annel0/combo-targeting/internal/world/entity"
	"github.com/gin-gonic/gin"
)

// GenericResponse - общий конверт ответа API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, GenericResponse{Success: false, Message: message})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"run_id": s.runID,
	})
}

// handleStats возвращает сведения о процессе и снимке мира
func (s *Server) handleStats(c *gin.Context) {
	world := s.classifier.Resolver().World()
	stats := map[string]interface{}{
		"process":  s.metrics.Snapshot(),
		"entities": len(world.EntitiesWhere(nil)),
		"run_id":   s.runID,
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}

func (s *Server) handleSelectors(c *gin.Context) {
	all := targeting.AllSelectors()
	names := make([]string, 0, len(all))
	for _, sel := range all {
		names = append(names, sel.String())
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Список селекторов",
		Data:    names,
	})
}

// selectorParam разбирает :selector; неизвестный селектор - 404
func (s *Server) selectorParam(c *gin.Context) (targeting.Selector, bool) {
	sel, err := targeting.ParseSelector(c.Param("selector"))
	if errors.Is(err, targeting.ErrUnknownSelector) {
		respondError(c, http.StatusNotFound, err.Error())
		return 0, false
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return sel, true
}

func (s *Server) handleResolve(c *gin.Context) {
	sel, ok := s.selectorParam(c)
	if !ok {
		return
	}
	report := scenario.EvaluateSelector(c.Request.Context(), s.classifier, sel)
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Селектор разрешён",
		Data:    report,
	})
}

// handleTargetSelector выбирает результат селектора основной целью
func (s *Server) handleTargetSelector(c *gin.Context) {
	sel, ok := s.selectorParam(c)
	if !ok {
		return
	}

	changed := s.classifier.TargetSelector(sel)
	message := "Цель выбрана"
	if !changed {
		message = "Селектор не разрешился или цель вне досягаемости"
	}
	s.logger.Debug("POST target %s → %v", sel, changed)

	c.JSON(http.StatusOK, GenericResponse{
		Success: changed,
		Message: message,
		Data:    scenario.NewEntityView(s.classifier.CurrentTarget()),
	})
}

func (s *Server) handlePartyIndex(c *gin.Context) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Неверный id объекта")
		return
	}
	index := s.classifier.Resolver().PartyIndex(entity.ObjectID(raw))
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Номер слота группы",
		Data:    gin.H{"id": raw, "party_index": index},
	})
}

// queryBool читает булев параметр запроса; отсутствующий параметр - false
func queryBool(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func (s *Server) handleHealTarget(c *gin.Context) {
	mouseover, err := queryBool(c, "mouseover")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Неверное значение mouseover")
		return
	}
	restrict, err := queryBool(c, "restrict")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Неверное значение restrict")
		return
	}

	heal := s.classifier.ResolveHealTarget(mouseover, restrict)
	c.JSON(http.StatusOK, GenericResponse{
		Success: heal != nil,
		Message: "Цель лечения",
		Data:    scenario.NewEntityView(heal),
	})
}

func (s *Server) handleCombat(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Состояние боя",
		Data:    scenario.EvaluateCombat(c.Request.Context(), s.classifier),
	})
}

// handleNearby возвращает враждебных NPC вокруг персонажа; radius по умолчанию - дистанция выбора цели
func (s *Server) handleNearby(c *gin.Context) {
	radius := combat.TargetableRange
	if raw := c.Query("radius"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			respondError(c, http.StatusBadRequest, "Неверный радиус")
			return
		}
		radius = r
	}

	hostiles := s.classifier.NearbyHostiles(radius)
	views := make([]*scenario.EntityView, 0, len(hostiles))
	for _, e := range hostiles {
		views = append(views, scenario.NewEntityView(e))
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Враги поблизости",
		Data:    gin.H{"radius": radius, "entities": views},
	})
}
