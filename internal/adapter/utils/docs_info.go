// @title           DocRouter API
// @version         1.0
// @description     Classifies uploaded documents by type and business intent and routes them to the matching handler.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package utils

//run redis
//docker run -p 6379:6379 -d redis

//run kafka (optional, action events are dropped without KAFKA_BROKERS)
//docker run -p 9092:9092 -d apache/kafka

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
