package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/qepting91/subreddit-analyzer/internal/domain"
)

// karmaChart plots link karma per commenter in table order.
func karmaChart(subreddit string, rows []domain.Row) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Post Karma", Subtitle: "r/" + subreddit}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	barX := make([]string, 0, len(rows))
	barY := make([]opts.BarData, 0, len(rows))
	for _, row := range rows {
		barX = append(barX, row.Profile.Username)
		barY = append(barY, opts.BarData{Value: row.Profile.PostKarma})
	}
	bar.SetXAxis(barX).AddSeries("Karma", barY)
	return bar
}

func (s *Server) chart(c *gin.Context) {
	st := s.svc.State()
	rows := st.Rows()
	if len(rows) == 0 {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := karmaChart(st.Query, rows).Render(c.Writer); err != nil {
		s.logger.Error("chart render failed", "error", err)
	}
}
