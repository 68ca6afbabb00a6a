package model

// Predictor は単変量の入力に対して予測を行うモデルのインターフェース
type Predictor interface {
	// Predict は入力 x に対する予測値を返す
	Predict(x float64) (float64, error)
}
