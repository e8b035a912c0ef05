package domain

import "context"

// Application はRoomのtickループ上で動くゲームロジックの境界です。
// HandleMessageとTickは必ず同一goroutine（Roomのtickループ）から呼ばれるため、
// 実装側でロックを持つ必要はありません。
type Application interface {
	// HandleMessage は受信した1メッセージを次のTickに向けて取り込みます。
	HandleMessage(ctx context.Context, sessionID SessionID, data []byte) error
	// Tick はシミュレーションを1tick進め、ブロードキャストすべきフレーム列を返します。
	Tick(ctx context.Context) [][]byte
}
