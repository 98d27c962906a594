// Package docs Trace Microservice API.
//
// Микросервис импорта GPX треков и обогащения городов для планировщика
// походов и ван-трипов. Принимает файлы треков, нормализует их (дистанция,
// набор высоты, длительность, сложность), раскладывает результат по
// реляционной базе и документному хранилищу и обогащает затронутые города
// прогнозом погоды, точками интереса (OSM, Wikidata) и местами ночёвки.
//
// Основные возможности:
// - Загрузка GPX файлов и их фоновый импорт
// - Чтение походов вместе с полным документом трека
// - Ручной запуск прохода импорта и догона обогащения
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
