// @title           Tujitume API
// @version         1.0
// @description     API маркетплейса разовых работ: гиги, отклики, выбор исполнителя, отзывы.
// @contact.name    Tujitume
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "tujitume_backend/internal/app"

func main() {
	app.Run()
}
