package config

// DefaultConfigYAML 内置默认配置，外部配置文件与环境变量可逐项覆盖
var DefaultConfigYAML = []byte(`server:
  port: ":8080"
  mode: "release"
  base_url: "http://localhost:8080"
  timezone: "Asia/Singapore"

database:
  host: "localhost"
  port: "3306"
  username: "spendbot"
  password: "spendbot"
  dbname: "spendbot"
  charset: "utf8mb4"

telegram:
  enabled: false
  token: ""
  debug: false

dashboard:
  shared_secret: "change-me"
  access_token_ttl_minutes: 30
  session_ttl_hours: 24

jwt:
  secret: "change-me-too"

email:
  enabled: false
  host: "smtp.example.com"
  port: 587
  username: ""
  password: ""
  from: ""
  to: ""
`)
