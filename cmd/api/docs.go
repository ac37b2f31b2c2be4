package main

// @title           ERP Fluvial API
// @version         1.0
// @description     API de emissão de notas de frete, bilhetes de passagem e relatórios da navegação fluvial

// @contact.name   Suporte Oliveira Navegação

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
