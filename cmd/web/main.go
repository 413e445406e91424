// @title           WorkLink API
// @version         1.0
// @description     REST API доски вакансий: работодатели, кандидаты, отклики.
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "worklink_backend/internal/app"

func main() {
	app.Run()
}
