package pages

import (
	"fmt"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"livingclock/internal/core/app"
	"livingclock/internal/core/snapshot"
	"livingclock/internal/weather"
)

const weatherRows = 11

func buildWeather(page *pageView) {
	title := canvas.NewText("", whiteText)
	title.TextSize = 26
	title.TextStyle.Bold = true
	page.add(place(title, image.Rect(48, 92, app.Width-48, 126)))

	temperature := canvas.NewText("", whiteText)
	temperature.TextSize = 48
	temperature.TextStyle.Bold = true
	page.add(place(temperature, image.Rect(48, 132, 300, 190)))

	rows := make([]*canvas.Text, weatherRows)
	for index := range rows {
		rows[index] = canvas.NewText("", whiteText)
		rows[index].TextSize = 15
		top := 200 + index*26
		page.add(place(rows[index], image.Rect(48, top, app.Width-48, top+22)))
	}

	footer := canvas.NewText("Click to refresh", mutedText)
	footer.TextSize = 12
	footer.Alignment = fyne.TextAlignTrailing
	page.add(place(footer, image.Rect(48, app.Height-64, app.Width-48, app.Height-48)))

	var lastFetch time.Time
	var lastReason string
	page.onUpdate(func(view app.View) {
		snap := view.Weather
		setColor(title, view.Settings.ThemeColor())
		setColor(temperature, view.Settings.DigitColor())
		if snap.FetchedAt.Equal(lastFetch) && snap.Reason == lastReason && !lastFetch.IsZero() {
			return
		}
		lastFetch, lastReason = snap.FetchedAt, snap.Reason

		lines := weatherLines(snap)
		if !snap.OK {
			setText(title, "Weather")
			setText(temperature, "--")
		} else {
			data := snap.Value
			location := data.City
			if data.Country != "" {
				location += ", " + data.Country
			}
			setText(title, location)
			setText(temperature, fmt.Sprintf("%.0f%s", data.Temp, data.TempUnit))
		}
		for index, row := range rows {
			value := ""
			if index < len(lines) {
				value = lines[index]
			}
			setText(row, value)
		}
	})
}

// weatherLines are the detail rows under the headline temperature.
func weatherLines(snap snapshot.Snapshot[weather.Data]) []string {
	if !snap.OK {
		return []string{snap.Reason}
	}
	data := snap.Value
	lines := []string{
		fmt.Sprintf("%s, feels like %.0f%s", data.Condition, data.FeelsLike, data.TempUnit),
		fmt.Sprintf("High %.0f%s  Low %.0f%s  Rain %d%%", data.High, data.TempUnit, data.Low, data.TempUnit, data.ChanceOfRain),
		fmt.Sprintf("Humidity %d%%  Wind %.0f %s", data.Humidity, data.Wind, data.WindUnit),
		fmt.Sprintf("Precipitation %.1f mm  UV %.0f  Cloud %d%%", data.PrecipMM, data.UV, data.Cloud),
	}
	if data.Alerts > 0 {
		lines = append(lines, fmt.Sprintf("%d weather alert(s) active", data.Alerts))
	}
	if len(data.Forecast) > 0 {
		lines = append(lines, "", "Forecast")
		for _, day := range data.Forecast {
			lines = append(lines, fmt.Sprintf("%s  %s  %.0f / %.0f%s  Rain %d%%",
				day.Date, day.Condition, day.High, day.Low, data.TempUnit, day.ChanceOfRain))
		}
	}
	if !snap.FetchedAt.IsZero() {
		lines = append(lines, "", "Updated "+snap.FetchedAt.Format("15:04"))
	}
	return lines
}
